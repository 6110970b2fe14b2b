package repository

import (
	"context"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
	"gorm.io/gorm"
)

// OrderFilter selects orders by owner. Zero values are ignored.
type OrderFilter struct {
	UserID       uint
	SpecialistID uint
	Limit        int
	Offset       int
}

func (f OrderFilter) scope(q *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.SpecialistID != 0 {
		q = q.Where("specialist_id = ?", f.SpecialistID)
	}
	return q
}

// withOrderJoins preloads the display associations. Soft deleted specialists
// are still loaded so order history keeps its summary.
func withOrderJoins(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Specialist", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("User")
}

func (r *Repository) CreateOrder(ctx context.Context, o *model.Order) error {
	return translate(r.db.WithContext(ctx).Omit("Specialist", "User").Create(o).Error)
}

func (r *Repository) GetOrder(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	if err := withOrderJoins(r.db.WithContext(ctx)).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
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

// ListOrders returns matching orders newest first, with the total count.
func (r *Repository) ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, int64, error) {
	var (
		orders []model.Order
		total  int64
	)

	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Order{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := withOrderJoins(db.Scopes(f.scope)).Order("created_at DESC").Order("id DESC")
	if err := paginate(q, f.Limit, f.Offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
