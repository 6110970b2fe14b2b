package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"go.uber.org/zap"
)

// ProfileInput is a partial profile update; nil fields are left unchanged.
type ProfileInput struct {
	Name           *string   `json:"name,omitempty"`
	CompanyName    *string   `json:"company_name,omitempty"`
	PhotoURL       *string   `json:"photo_url,omitempty"`
	Certifications *[]string `json:"certifications,omitempty"`
}

type ProfileService struct {
	store  Store
	logger *zap.Logger
}

func NewProfileService(store Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger.Named("profile_service")}
}

func (s *ProfileService) GetProfile(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", e.ErrValidation)
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", email, err)
	}
	return user, nil
}

// UpdateProfile applies in to the profile of email, creating the row first if
// the account has none yet.
func (s *ProfileService) UpdateProfile(ctx context.Context, email string, in ProfileInput) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", e.ErrValidation)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.CompanyName != nil {
		updates["company_name"] = strings.TrimSpace(*in.CompanyName)
	}
	if in.PhotoURL != nil {
		updates["photo_url"] = strings.TrimSpace(*in.PhotoURL)
	}

	var user *model.User
	err := s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		u, err := resolveUser(ctx, repo, email)
		if err != nil {
			return err
		}
		if in.Certifications != nil {
			u.Certifications = normalizeCertifications(*in.Certifications)
			updates["certifications"] = u.Certifications
		}
		if len(updates) > 0 {
			if err := repo.UpdateUser(ctx, u.ID, updates); err != nil {
				return err
			}
		}
		user, err = repo.GetUser(ctx, u.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
