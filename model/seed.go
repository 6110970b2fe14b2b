package model

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var seedData []byte

type seedFile struct {
	Offerings []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		IconKey     string `yaml:"icon_key"`
	} `yaml:"offerings"`
	PlatformFees []struct {
		TierName   string `yaml:"tier_name"`
		MinValue   string `yaml:"min_value"`
		MaxValue   string `yaml:"max_value"`
		Percentage string `yaml:"percentage"`
	} `yaml:"platform_fees"`
}

func loadSeed() (seedFile, error) {
	var s seedFile
	if err := yaml.Unmarshal(seedData, &s); err != nil {
		return s, fmt.Errorf("parse seed data: %w", err)
	}
	return s, nil
}

// SeedOfferingCatalog inserts the catalog entries that do not exist yet.
func SeedOfferingCatalog(db *gorm.DB) error {
	s, err := loadSeed()
	if err != nil {
		return err
	}

	for _, o := range s.Offerings {
		var existing ServiceOfferingMasterList
		err := db.Where("title = ?", o.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		entry := ServiceOfferingMasterList{Title: o.Title, Description: o.Description, IconKey: o.IconKey}
		if err := db.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to seed offering %s: %w", o.Title, err)
		}
	}
	return nil
}

// SeedPlatformFees inserts the fee tiers that do not exist yet.
func SeedPlatformFees(db *gorm.DB) error {
	s, err := loadSeed()
	if err != nil {
		return err
	}

	for _, tier := range s.PlatformFees {
		var existing PlatformFee
		err := db.Where("tier_name = ?", tier.TierName).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := PlatformFee{TierName: tier.TierName}
		if row.MinValue, err = decimal.NewFromString(tier.MinValue); err != nil {
			return fmt.Errorf("tier %s min_value: %w", tier.TierName, err)
		}
		if row.MaxValue, err = decimal.NewFromString(tier.MaxValue); err != nil {
			return fmt.Errorf("tier %s max_value: %w", tier.TierName, err)
		}
		if row.PlatformFeePercentage, err = decimal.NewFromString(tier.Percentage); err != nil {
			return fmt.Errorf("tier %s percentage: %w", tier.TierName, err)
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed platform fee %s: %w", tier.TierName, err)
		}
	}
	return nil
}

// Seed runs every seeder.
func Seed(db *gorm.DB) error {
	if err := SeedOfferingCatalog(db); err != nil {
		return err
	}
	return SeedPlatformFees(db)
}
