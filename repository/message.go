package repository

import (
	"context"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
	"gorm.io/gorm"
)

func (r *Repository) CreateMessage(ctx context.Context, m *model.ContactMessage) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *Repository) ListMessages(ctx context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, int64, error) {
	var (
		messages []model.ContactMessage
		total    int64
	)

	scope := func(q *gorm.DB) *gorm.DB {
		if unreadOnly {
			return q.Where("is_read = ?", false)
		}
		return q
	}

	db := r.db.WithContext(ctx)
	if err := db.Model(&model.ContactMessage{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := paginate(db.Scopes(scope).Order("created_at DESC").Order("id DESC"), limit, offset)
	if err := q.Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *Repository) MarkMessageRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteMessage(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}
