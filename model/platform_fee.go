package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlatformFee is a pricing tier row. The tiers are seeded and listed for
// reference; price computation uses the flat rate in the service package.
type PlatformFee struct {
	gorm.Model
	TierName              string          `json:"tier_name" gorm:"type:varchar(64);uniqueIndex;not null" example:"Tier 1"`
	MinValue              decimal.Decimal `json:"min_value" gorm:"type:decimal(12,2);not null"`
	MaxValue              decimal.Decimal `json:"max_value" gorm:"type:decimal(12,2);not null"`
	PlatformFeePercentage decimal.Decimal `json:"platform_fee_percentage" gorm:"type:decimal(5,2);not null" example:"15.00"`
}
