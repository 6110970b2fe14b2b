package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"go.uber.org/zap"
)

// RegistrationInput is a company registration request made by the account
// identified by Email.
type RegistrationInput struct {
	Email          string `json:"email" example:"owner@example.com"`
	CompanyName    string `json:"companyName" example:"Maju Jaya Sdn Bhd"`
	CompanyType    string `json:"companyType" example:"SDN_BHD"`
	CompanyLogoURL string `json:"companyLogoUrl,omitempty" example:"https://cdn.example.com/u/logo.png"`
}

type RegistrationService struct {
	store    Store
	producer events.Publisher
	logger   *zap.Logger
}

func NewRegistrationService(store Store, producer events.Publisher, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		store:    store,
		producer: producer,
		logger:   logger.Named("registration_service"),
	}
}

// RegisterCompany creates the one company registration a user may ever own.
// The user row is provisioned on first use. Any earlier registration,
// whatever its status, makes the call fail with ErrLimitReached.
func (s *RegistrationService) RegisterCompany(ctx context.Context, in RegistrationInput) (*model.CompanyRegistration, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanyType = strings.TrimSpace(in.CompanyType)
	in.CompanyLogoURL = strings.TrimSpace(in.CompanyLogoURL)
	switch {
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", e.ErrValidation)
	case in.CompanyName == "":
		return nil, fmt.Errorf("%w: companyName is required", e.ErrValidation)
	case in.CompanyType == "":
		return nil, fmt.Errorf("%w: companyType is required", e.ErrValidation)
	}

	var reg *model.CompanyRegistration
	err := s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		user, err := resolveUser(ctx, repo, in.Email)
		if err != nil {
			return err
		}

		count, err := repo.CountRegistrations(ctx, user.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return e.ErrLimitReached
		}

		reg = &model.CompanyRegistration{
			UserID:         user.ID,
			CompanyName:    in.CompanyName,
			CompanyType:    in.CompanyType,
			CompanyLogoURL: in.CompanyLogoURL,
			Status:         model.RegistrationPending,
		}
		if err := repo.CreateRegistration(ctx, reg); err != nil {
			if errors.Is(err, e.ErrDuplicateKey) {
				return e.ErrLimitReached
			}
			return err
		}

		return repo.UpdateUser(ctx, user.ID, map[string]interface{}{
			"company_name":     in.CompanyName,
			"company_logo_url": in.CompanyLogoURL,
		})
	})
	if err != nil {
		if errors.Is(err, e.ErrLimitReached) {
			s.logger.Info("company registration refused", zap.String("email", in.Email))
			return nil, err
		}
		return nil, fmt.Errorf("failed to register company: %w", err)
	}

	s.producer.Produce(events.CompanyRegistered, in.Email, reg)
	return reg, nil
}

// resolveUser locks the user row for email, creating it when missing.
func resolveUser(ctx context.Context, repo *repository.Repository, email string) (*model.User, error) {
	user, err := repo.LockUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, e.ErrNotFound) {
		return nil, err
	}
	user = &model.User{Email: email, Role: model.RoleUser}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

// ListRegistrations returns the registrations of the account. Unknown
// accounts simply have none.
func (s *RegistrationService) ListRegistrations(ctx context.Context, email string) ([]model.CompanyRegistration, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", e.ErrValidation)
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, e.ErrNotFound) {
		return []model.CompanyRegistration{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	regs, err := s.store.ListRegistrations(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// SetRegistrationStatus records the admin review outcome. It does not lift
// the one registration limit.
func (s *RegistrationService) SetRegistrationStatus(ctx context.Context, id uint, status model.RegistrationStatus) (*model.CompanyRegistration, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", e.ErrInvalidStatus, status)
	}
	if err := s.store.UpdateRegistrationStatus(ctx, id, status); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("registration %d: %w", id, err)
		}
		return nil, fmt.Errorf("failed to update registration: %w", err)
	}
	reg, err := s.store.GetRegistration(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("registration %d: %w", id, err)
	}
	return reg, nil
}
