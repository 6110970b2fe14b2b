package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VerificationStatus is the admin review state of a specialist listing.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Valid reports whether s is a known verification status.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// Specialist represents a company-secretary listing on the marketplace
// @Description Specialist listing information
type Specialist struct {
	gorm.Model
	Title              string                      `json:"title" gorm:"type:varchar(255);not null" example:"Company Secretary Package"`
	Slug               string                      `json:"slug" gorm:"type:varchar(191);uniqueIndex;not null" example:"company-secretary-package-3f9a1c"`
	Description        string                      `json:"description" gorm:"type:text"`
	BasePrice          decimal.Decimal             `json:"base_price" gorm:"type:decimal(12,2);not null;default:0" example:"1500.00"`
	PlatformFee        decimal.Decimal             `json:"platform_fee" gorm:"type:decimal(12,2);not null;default:0" example:"450.00"`
	FinalPrice         decimal.Decimal             `json:"final_price" gorm:"type:decimal(12,2);not null;default:0" example:"1950.00"`
	DurationDays       int                         `json:"duration_days" example:"14"`
	IsDraft            bool                        `json:"is_draft" gorm:"not null;default:true"`
	VerificationStatus VerificationStatus          `json:"verification_status" gorm:"type:varchar(16);not null;default:PENDING"`
	PurchaseCount      int                         `json:"purchase_count" gorm:"not null;default:0;check:purchase_count >= 0"`
	AverageRating      decimal.Decimal             `json:"average_rating" gorm:"type:decimal(3,2);not null;default:0"`
	SecretaryName      string                      `json:"secretary_name" gorm:"type:varchar(255);index"`
	SecretaryCompany   string                      `json:"secretary_company" gorm:"type:varchar(255)"`
	SecretaryEmail     string                      `json:"secretary_email" gorm:"type:varchar(191);index"`
	SecretaryPhone     string                      `json:"secretary_phone" gorm:"type:varchar(32)"`
	SecretaryBio       string                      `json:"secretary_bio" gorm:"type:text"`
	AvatarURL          string                      `json:"avatar_url" gorm:"type:varchar(512)"`
	CompanyLogoURL     string                      `json:"company_logo_url" gorm:"type:varchar(512)"`
	Certifications     datatypes.JSONSlice[string] `json:"certifications"`
	Media              []Media                     `json:"media" gorm:"foreignKey:SpecialistID;constraint:OnDelete:CASCADE"`
	ServiceOfferings   []ServiceOffering           `json:"service_offerings" gorm:"foreignKey:SpecialistID;constraint:OnDelete:CASCADE"`
}

// MimeType is the content type of an uploaded media file.
type MimeType string

const (
	MimeJPEG MimeType = "image/jpeg"
	MimePNG  MimeType = "image/png"
	MimeWEBP MimeType = "image/webp"
	MimeGIF  MimeType = "image/gif"
	MimePDF  MimeType = "application/pdf"
)

func (m MimeType) Valid() bool {
	switch m {
	case MimeJPEG, MimePNG, MimeWEBP, MimeGIF, MimePDF:
		return true
	}
	return false
}

// MediaType classifies a media asset.
type MediaType string

const (
	MediaImage    MediaType = "IMAGE"
	MediaVideo    MediaType = "VIDEO"
	MediaDocument MediaType = "DOCUMENT"
)

func (m MediaType) Valid() bool {
	switch m {
	case MediaImage, MediaVideo, MediaDocument:
		return true
	}
	return false
}

// MaxMediaPerSpecialist caps the primary images shown on a listing.
const MaxMediaPerSpecialist = 3

// Media is an asset attached to a specialist. Rows are owned by the parent and
// replaced wholesale on update.
type Media struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SpecialistID uint      `json:"specialist_id" gorm:"not null;index"`
	URL          string    `json:"url" gorm:"type:varchar(512);not null"`
	FileName     string    `json:"file_name" gorm:"type:varchar(255)"`
	FileSize     int64     `json:"file_size"`
	MimeType     MimeType  `json:"mime_type" gorm:"type:varchar(64)"`
	MediaType    MediaType `json:"media_type" gorm:"type:varchar(16)"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
