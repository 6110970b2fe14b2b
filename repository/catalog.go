package repository

import (
	"context"

	"github.com/ariebrainware/cosec-marketplace/model"
)

func (r *Repository) ListOfferingCatalog(ctx context.Context) ([]model.ServiceOfferingMasterList, error) {
	var entries []model.ServiceOfferingMasterList
	err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error
	return entries, err
}

// CountCatalogEntries returns how many of ids exist in the offering catalog.
func (r *Repository) CountCatalogEntries(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceOfferingMasterList{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *Repository) ListPlatformFees(ctx context.Context) ([]model.PlatformFee, error) {
	var tiers []model.PlatformFee
	err := r.db.WithContext(ctx).Order("min_value ASC").Find(&tiers).Error
	return tiers, err
}
