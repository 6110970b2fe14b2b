package service

import (
	"fmt"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the flat share of the base price charged by the platform.
// The seeded platform_fees tiers are not consulted.
var PlatformFeeRate = decimal.RequireFromString("0.30")

// PriceScale is the number of decimal places kept on every money value.
const PriceScale = 2

// Quote is the price breakdown of a listing.
type Quote struct {
	BasePrice      decimal.Decimal `json:"base_price"`
	PlatformFee    decimal.Decimal `json:"platform_fee"`
	OfferingsTotal decimal.Decimal `json:"offerings_total"`
	FinalPrice     decimal.Decimal `json:"final_price"`
}

// ComputePrice derives the platform fee and final price from a base price and
// the prices of the selected add-on offerings. Values are rounded half-up to
// two decimal places.
func ComputePrice(base decimal.Decimal, offeringPrices ...decimal.Decimal) (Quote, error) {
	if base.IsNegative() {
		return Quote{}, fmt.Errorf("%w: base_price must not be negative", e.ErrInvalidPrice)
	}

	total := decimal.Zero
	for i, p := range offeringPrices {
		if p.IsNegative() {
			return Quote{}, fmt.Errorf("%w: offering %d price must not be negative", e.ErrInvalidPrice, i)
		}
		total = total.Add(p)
	}

	base = base.Round(PriceScale)
	fee := base.Mul(PlatformFeeRate).Round(PriceScale)
	total = total.Round(PriceScale)

	return Quote{
		BasePrice:      base,
		PlatformFee:    fee,
		OfferingsTotal: total,
		FinalPrice:     base.Add(fee).Add(total),
	}, nil
}
