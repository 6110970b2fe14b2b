package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceOfferingMasterList is the shared catalog of add-on offerings
// @Description Add-on offering catalog entry
type ServiceOfferingMasterList struct {
	gorm.Model
	Title       string `json:"title" gorm:"type:varchar(191);uniqueIndex;not null" example:"Annual Return Filing"`
	Description string `json:"description" gorm:"type:text"`
	IconKey     string `json:"icon_key" gorm:"type:varchar(64)" example:"file-text"`
}

// ServiceOffering links a specialist to a catalog entry with its own price.
type ServiceOffering struct {
	ID                          uint                       `json:"id" gorm:"primaryKey"`
	SpecialistID                uint                       `json:"specialist_id" gorm:"not null;index"`
	ServiceOfferingMasterListID uint                       `json:"service_offering_master_list_id" gorm:"not null;index"`
	Price                       decimal.Decimal            `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	MasterList                  *ServiceOfferingMasterList `json:"master_list,omitempty" gorm:"foreignKey:ServiceOfferingMasterListID"`
	CreatedAt                   time.Time                  `json:"created_at"`
	UpdatedAt                   time.Time                  `json:"updated_at"`
}
