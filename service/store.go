// Package service implements the marketplace business rules: pricing, the
// specialist and order lifecycles and the company registration limit.
package service

import (
	"context"

	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
)

// Store is the persistence surface the services depend on. Multi-step writes
// run inside WithTransaction against the transaction bound repository.
type Store interface {
	WithTransaction(ctx context.Context, fn func(repo *repository.Repository) error) error

	GetSpecialist(ctx context.Context, id uint) (*model.Specialist, error)
	GetSpecialistBySlug(ctx context.Context, slug string) (*model.Specialist, error)
	FindSpecialistByOwnerEmail(ctx context.Context, email string) (*model.Specialist, error)
	FindSpecialistByOwnerName(ctx context.Context, name string) (*model.Specialist, error)
	ListSpecialists(ctx context.Context, f repository.SpecialistFilter) ([]model.Specialist, int64, error)
	SetVerificationStatus(ctx context.Context, id uint, status model.VerificationStatus) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountCatalogEntries(ctx context.Context, ids []uint) (int64, error)

	GetOrder(ctx context.Context, id uint) (*model.Order, error)
	ListOrders(ctx context.Context, f repository.OrderFilter) ([]model.Order, int64, error)

	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListRegistrations(ctx context.Context, userID uint) ([]model.CompanyRegistration, error)
	GetRegistration(ctx context.Context, id uint) (*model.CompanyRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, id uint, status model.RegistrationStatus) error

	ListOfferingCatalog(ctx context.Context) ([]model.ServiceOfferingMasterList, error)
	ListPlatformFees(ctx context.Context) ([]model.PlatformFee, error)

	CreateMessage(ctx context.Context, m *model.ContactMessage) error
	ListMessages(ctx context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, int64, error)
	MarkMessageRead(ctx context.Context, id uint) error
	DeleteMessage(ctx context.Context, id uint) error
}

var _ Store = (*repository.Repository)(nil)
