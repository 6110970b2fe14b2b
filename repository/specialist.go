package repository

import (
	"context"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SpecialistFilter narrows ListSpecialists. A nil IsDraft returns drafts and
// published listings alike.
type SpecialistFilter struct {
	IsDraft *bool
	Keyword string
	Limit   int
	Offset  int
}

func withSpecialistChildren(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("ServiceOfferings", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("ServiceOfferings.MasterList")
}

// CreateSpecialist inserts the specialist together with its media and offerings.
func (r *Repository) CreateSpecialist(ctx context.Context, s *model.Specialist) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

// SlugExists checks soft-deleted rows too, since the unique index covers them.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Specialist{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) GetSpecialist(ctx context.Context, id uint) (*model.Specialist, error) {
	var s model.Specialist
	if err := withSpecialistChildren(r.db.WithContext(ctx)).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// GetSpecialistUnscoped loads the row even when it has been soft deleted.
func (r *Repository) GetSpecialistUnscoped(ctx context.Context, id uint) (*model.Specialist, error) {
	var s model.Specialist
	if err := r.db.WithContext(ctx).Unscoped().First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *Repository) GetSpecialistBySlug(ctx context.Context, slug string) (*model.Specialist, error) {
	var s model.Specialist
	if err := withSpecialistChildren(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// FindSpecialistByOwnerEmail returns the oldest live listing owned by email.
func (r *Repository) FindSpecialistByOwnerEmail(ctx context.Context, email string) (*model.Specialist, error) {
	var s model.Specialist
	err := withSpecialistChildren(r.db.WithContext(ctx)).
		Where("secretary_email = ?", email).
		Order("id ASC").
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// FindSpecialistByOwnerName returns the oldest live listing whose secretary name matches.
func (r *Repository) FindSpecialistByOwnerName(ctx context.Context, name string) (*model.Specialist, error) {
	var s model.Specialist
	err := withSpecialistChildren(r.db.WithContext(ctx)).
		Where("secretary_name = ?", name).
		Order("id ASC").
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (f SpecialistFilter) scope(q *gorm.DB) *gorm.DB {
	if f.IsDraft != nil {
		q = q.Where("is_draft = ?", *f.IsDraft)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("(title LIKE ? OR secretary_name LIKE ? OR secretary_company LIKE ?)", kw, kw, kw)
	}
	return q
}

func (r *Repository) ListSpecialists(ctx context.Context, f SpecialistFilter) ([]model.Specialist, int64, error) {
	var (
		specialists []model.Specialist
		total       int64
	)

	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Specialist{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := withSpecialistChildren(db.Scopes(f.scope)).Order("created_at DESC").Order("id DESC")
	if err := paginate(q, f.Limit, f.Offset).Find(&specialists).Error; err != nil {
		return nil, 0, err
	}
	return specialists, total, nil
}

// editableSpecialistColumns are the columns owned by create/update input.
// purchase_count, verification_status and slug have their own writers and
// must never be rewritten from a previously read row.
var editableSpecialistColumns = []string{
	"title", "description", "base_price", "platform_fee", "final_price",
	"duration_days", "is_draft",
	"secretary_name", "secretary_company", "secretary_email", "secretary_phone", "secretary_bio",
	"avatar_url", "company_logo_url", "certifications", "updated_at",
}

// SaveSpecialistFields writes the input-owned columns of s, zero values
// included. Child collections are left alone; use ReplaceMedia and
// ReplaceOfferings for those.
func (r *Repository) SaveSpecialistFields(ctx context.Context, s *model.Specialist) error {
	return translate(r.db.WithContext(ctx).Model(s).
		Select(editableSpecialistColumns).
		Omit(clause.Associations).
		Updates(s).Error)
}

// ReplaceMedia deletes every media row of the specialist and inserts media in
// its place. An empty slice leaves the specialist without media.
func (r *Repository) ReplaceMedia(ctx context.Context, specialistID uint, media []model.Media) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("specialist_id = ?", specialistID).Delete(&model.Media{}).Error; err != nil {
		return err
	}
	if len(media) == 0 {
		return nil
	}
	for i := range media {
		media[i].ID = 0
		media[i].SpecialistID = specialistID
	}
	return db.Create(&media).Error
}

// ReplaceOfferings deletes every offering of the specialist and inserts offerings.
func (r *Repository) ReplaceOfferings(ctx context.Context, specialistID uint, offerings []model.ServiceOffering) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("specialist_id = ?", specialistID).Delete(&model.ServiceOffering{}).Error; err != nil {
		return err
	}
	if len(offerings) == 0 {
		return nil
	}
	for i := range offerings {
		offerings[i].ID = 0
		offerings[i].SpecialistID = specialistID
		offerings[i].MasterList = nil
	}
	return db.Create(&offerings).Error
}

// SoftDeleteSpecialist stamps deleted_at. Children are not touched.
func (r *Repository) SoftDeleteSpecialist(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Specialist{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) SetVerificationStatus(ctx context.Context, id uint, status model.VerificationStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Specialist{}).
		Where("id = ?", id).
		Update("verification_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// IncrementPurchaseCount bumps the counter in SQL so concurrent orders never
// lose an increment.
func (r *Repository) IncrementPurchaseCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Specialist{}).
		Where("id = ?", id).
		UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
