package model

import "gorm.io/gorm"

// RegistrationStatus is the review state of a company registration.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// CompanyRegistration is a user's request to register a company. A user owns
// at most one, enforced by the unique index on UserID.
// @Description Company registration information
type CompanyRegistration struct {
	gorm.Model
	UserID         uint               `json:"user_id" gorm:"not null;uniqueIndex"`
	CompanyName    string             `json:"company_name" gorm:"type:varchar(255);not null" example:"Maju Jaya Sdn Bhd"`
	CompanyType    string             `json:"company_type" gorm:"type:varchar(64);not null" example:"SDN_BHD"`
	CompanyLogoURL string             `json:"company_logo_url" gorm:"type:varchar(512)"`
	Status         RegistrationStatus `json:"status" gorm:"type:varchar(16);not null;default:PENDING"`
}
