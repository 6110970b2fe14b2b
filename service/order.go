package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderInput is a new order placed by a registered user (UserID) or by a
// guest (CustomerName, CustomerEmail and CustomerPhone), never both.
type OrderInput struct {
	SpecialistID  uint             `json:"specialist_id" example:"1"`
	UserID        *uint            `json:"user_id,omitempty" example:"7"`
	CustomerName  string           `json:"customer_name,omitempty" example:"Tan Mei Ling"`
	CustomerEmail string           `json:"customer_email,omitempty" example:"meiling@example.com"`
	CustomerPhone string           `json:"customer_phone,omitempty" example:"+60123456789"`
	Requirements  string           `json:"requirements,omitempty"`
	Amount        *decimal.Decimal `json:"amount" example:"1950"`
}

// OrderQuery selects orders for GetOrders. At least one id is required.
type OrderQuery struct {
	UserID       uint
	SpecialistID uint
	Limit        int
	Offset       int
}

type OrderService struct {
	store    Store
	producer events.Publisher
	logger   *zap.Logger
}

func NewOrderService(store Store, producer events.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		producer: producer,
		logger:   logger.Named("order_service"),
	}
}

func (in *OrderInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.Requirements = strings.TrimSpace(in.Requirements)
	if in.UserID != nil && *in.UserID == 0 {
		in.UserID = nil
	}
}

func (in OrderInput) validate() error {
	if in.SpecialistID == 0 {
		return fmt.Errorf("%w: specialist_id is required", e.ErrValidation)
	}
	if in.Amount == nil {
		return fmt.Errorf("%w: amount is required", e.ErrValidation)
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", e.ErrInvalidPrice)
	}

	anyGuest := in.CustomerName != "" || in.CustomerEmail != "" || in.CustomerPhone != ""
	allGuest := in.CustomerName != "" && in.CustomerEmail != "" && in.CustomerPhone != ""
	switch {
	case in.UserID != nil && anyGuest:
		return fmt.Errorf("%w: user_id cannot be combined with guest contact fields", e.ErrValidation)
	case in.UserID == nil && !allGuest:
		return fmt.Errorf("%w: user_id or customer_name, customer_email and customer_phone are required", e.ErrValidation)
	}
	return nil
}

// CreateOrder stores a PENDING order and increments the specialist's
// purchase_count in the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (*model.Order, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := &model.Order{
		SpecialistID:  in.SpecialistID,
		UserID:        in.UserID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Requirements:  in.Requirements,
		Amount:        in.Amount.Round(PriceScale),
		Status:        model.OrderPending,
	}

	var created *model.Order
	err := s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		if _, err := repo.GetSpecialist(ctx, in.SpecialistID); err != nil {
			return fmt.Errorf("specialist %d: %w", in.SpecialistID, err)
		}
		if in.UserID != nil {
			if _, err := repo.GetUser(ctx, *in.UserID); err != nil {
				return fmt.Errorf("user %d: %w", *in.UserID, err)
			}
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}
		if err := repo.IncrementPurchaseCount(ctx, in.SpecialistID); err != nil {
			return err
		}
		var err error
		created, err = repo.GetOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.producer.Produce(events.OrderCreated, orderKey(created.ID), model.NewOrderView(*created))
	return created, nil
}

// UpdateOrderStatus moves an order to status. Unknown statuses are rejected,
// and COMPLETED and CANCELLED orders cannot move anywhere else. Setting the
// current status again is a no-op.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*model.Order, error) {
	next := model.OrderStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", e.ErrInvalidStatus, status)
	}

	var (
		updated  *model.Order
		previous model.OrderStatus
	)
	err := s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		current, err := repo.GetOrder(ctx, id)
		if err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}
		previous = current.Status
		if current.Status == next {
			updated = current
			return nil
		}
		if current.Status.Terminal() {
			return fmt.Errorf("%w: %s -> %s", e.ErrInvalidTransition, current.Status, next)
		}
		if err := repo.UpdateOrderStatus(ctx, id, next); err != nil {
			return err
		}
		updated, err = repo.GetOrder(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrConstraint) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if previous != next {
		s.producer.Produce(events.OrderStatusChanged, orderKey(id), map[string]interface{}{
			"order_id": id,
			"from":     previous,
			"to":       next,
		})
	}
	return updated, nil
}

// GetOrders lists orders of a user and/or a specialist with their display
// summaries, newest first.
func (s *OrderService) GetOrders(ctx context.Context, q OrderQuery) ([]model.OrderView, int64, error) {
	if q.UserID == 0 && q.SpecialistID == 0 {
		return nil, 0, fmt.Errorf("%w: user_id or specialist_id is required", e.ErrValidation)
	}
	return s.listOrders(ctx, repository.OrderFilter{
		UserID:       q.UserID,
		SpecialistID: q.SpecialistID,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
}

// ListAllOrders is the unfiltered admin view.
func (s *OrderService) ListAllOrders(ctx context.Context, limit, offset int) ([]model.OrderView, int64, error) {
	return s.listOrders(ctx, repository.OrderFilter{Limit: limit, Offset: offset})
}

func (s *OrderService) listOrders(ctx context.Context, f repository.OrderFilter) ([]model.OrderView, int64, error) {
	orders, total, err := s.store.ListOrders(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	views := make([]model.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, model.NewOrderView(o))
	}
	return views, total, nil
}

func orderKey(id uint) string {
	return "order-" + strconv.FormatUint(uint64(id), 10)
}
