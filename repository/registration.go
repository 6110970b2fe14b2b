package repository

import (
	"context"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
)

// CountRegistrations counts every registration the user ever made, whatever
// its status and including soft deleted rows.
func (r *Repository) CountRegistrations(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.CompanyRegistration{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *Repository) CreateRegistration(ctx context.Context, reg *model.CompanyRegistration) error {
	return translate(r.db.WithContext(ctx).Create(reg).Error)
}

func (r *Repository) ListRegistrations(ctx context.Context, userID uint) ([]model.CompanyRegistration, error) {
	var regs []model.CompanyRegistration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}

func (r *Repository) GetRegistration(ctx context.Context, id uint) (*model.CompanyRegistration, error) {
	var reg model.CompanyRegistration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, translate(err)
	}
	return &reg, nil
}

func (r *Repository) UpdateRegistrationStatus(ctx context.Context, id uint, status model.RegistrationStatus) error {
	result := r.db.WithContext(ctx).Model(&model.CompanyRegistration{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
