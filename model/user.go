package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserRole is the access level resolved from the identity provider.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the profile row for an account. It can be bootstrapped separately
// from the identity provider account, e.g. on first company registration.
// @Description User profile information
type User struct {
	gorm.Model
	Email          string                      `json:"email" gorm:"type:varchar(191);uniqueIndex;not null" example:"owner@example.com"`
	Name           string                      `json:"name" gorm:"type:varchar(255)" example:"Ahmad Rahman"`
	Password       string                      `json:"-" gorm:"type:varchar(255)"`
	Role           UserRole                    `json:"role" gorm:"type:varchar(16);not null;default:USER"`
	CompanyName    string                      `json:"company_name" gorm:"type:varchar(255)"`
	CompanyLogoURL string                      `json:"company_logo_url" gorm:"type:varchar(512)"`
	PhotoURL       string                      `json:"photo_url" gorm:"type:varchar(512)"`
	Certifications datatypes.JSONSlice[string] `json:"certifications"`
	Registrations  []CompanyRegistration       `json:"registrations,omitempty" gorm:"foreignKey:UserID"`
}
