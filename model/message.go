package model

import "gorm.io/gorm"

// ContactMessage is an enquiry submitted through the public contact form.
type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"type:varchar(255);not null"`
	Email   string `json:"email" gorm:"type:varchar(191);not null;index"`
	Subject string `json:"subject" gorm:"type:varchar(255)"`
	Message string `json:"message" gorm:"type:text;not null"`
	IsRead  bool   `json:"is_read" gorm:"not null;default:false;index"`
}
