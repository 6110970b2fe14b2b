package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MediaInput describes an already uploaded file attached to a listing.
type MediaInput struct {
	URL       string          `json:"url" example:"https://cdn.example.com/u/logo.png"`
	FileName  string          `json:"file_name" example:"logo.png"`
	FileSize  int64           `json:"file_size" example:"20480"`
	MimeType  model.MimeType  `json:"mime_type" example:"image/png"`
	MediaType model.MediaType `json:"media_type" example:"IMAGE"`
}

// OfferingInput selects a catalog entry. A nil Price counts as zero.
type OfferingInput struct {
	ServiceOfferingMasterListID uint             `json:"service_offering_master_list_id" example:"1"`
	Price                       *decimal.Decimal `json:"price" example:"300"`
}

// SpecialistInput carries every writable field of a listing. On update the
// Media and ServiceOfferings slices replace the stored ones entirely.
type SpecialistInput struct {
	Title              string                   `json:"title" example:"Company Secretary Package"`
	Description        string                   `json:"description"`
	BasePrice          decimal.Decimal          `json:"base_price" example:"1500"`
	DurationDays       int                      `json:"duration_days" example:"14"`
	IsDraft            *bool                    `json:"is_draft,omitempty"`
	VerificationStatus model.VerificationStatus `json:"verification_status,omitempty"`
	SecretaryName      string                   `json:"secretary_name"`
	SecretaryCompany   string                   `json:"secretary_company"`
	SecretaryEmail     string                   `json:"secretary_email"`
	SecretaryPhone     string                   `json:"secretary_phone"`
	SecretaryBio       string                   `json:"secretary_bio"`
	AvatarURL          string                   `json:"avatar_url"`
	CompanyLogoURL     string                   `json:"company_logo_url"`
	Certifications     []string                 `json:"certifications"`
	Media              []MediaInput             `json:"media"`
	ServiceOfferings   []OfferingInput          `json:"service_offerings"`
}

// SpecialistQuery is the list filter for ListSpecialists.
type SpecialistQuery struct {
	IsDraft *bool
	Keyword string
	Limit   int
	Offset  int
}

const slugAttempts = 5

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SlugBase lowercases title and collapses every run of non-alphanumeric
// characters into a single hyphen.
func SlugBase(title string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = strings.TrimRight(s[:80], "-")
	}
	if s == "" {
		s = "specialist"
	}
	return s
}

func slugSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

type SpecialistService struct {
	store    Store
	producer events.Publisher
	logger   *zap.Logger
}

func NewSpecialistService(store Store, producer events.Publisher, logger *zap.Logger) *SpecialistService {
	return &SpecialistService{
		store:    store,
		producer: producer,
		logger:   logger.Named("specialist_service"),
	}
}

// CreateSpecialist validates and prices the listing, then stores it with its
// media and offerings in one transaction. New listings are drafts pending
// verification unless the input says otherwise.
func (s *SpecialistService) CreateSpecialist(ctx context.Context, in SpecialistInput) (*model.Specialist, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	quote, err := quoteFor(in)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	sp := &model.Specialist{
		Slug:               slug,
		IsDraft:            true,
		VerificationStatus: model.VerificationPending,
	}
	applyInput(sp, in, quote)
	if in.IsDraft != nil {
		sp.IsDraft = *in.IsDraft
	}
	if in.VerificationStatus != "" {
		sp.VerificationStatus = in.VerificationStatus
	}
	sp.Media = buildMedia(in.Media)
	sp.ServiceOfferings = buildOfferings(in.ServiceOfferings)

	draft := sp.IsDraft
	var created *model.Specialist
	err = s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		if err := repo.CreateSpecialist(ctx, sp); err != nil {
			return err
		}
		// gorm swaps a false is_draft for the column default on insert.
		if !draft {
			sp.IsDraft = false
			if err := repo.SaveSpecialistFields(ctx, sp); err != nil {
				return err
			}
		}
		created, err = repo.GetSpecialist(ctx, sp.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: slug %q already taken", e.ErrConstraint, slug)
		}
		return nil, fmt.Errorf("failed to create specialist: %w", err)
	}

	s.producer.Produce(events.SpecialistCreated, created.Slug, created)
	return created, nil
}

// UpdateSpecialist replaces the scalar fields of a live listing and swaps its
// media and offerings for the supplied sets. Omitting media removes it.
func (s *SpecialistService) UpdateSpecialist(ctx context.Context, id uint, in SpecialistInput) (*model.Specialist, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	quote, err := quoteFor(in)
	if err != nil {
		return nil, err
	}

	var (
		updated   *model.Specialist
		published bool
	)
	err = s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		sp, err := repo.GetSpecialist(ctx, id)
		if err != nil {
			return err
		}
		wasDraft := sp.IsDraft

		applyInput(sp, in, quote)
		if in.IsDraft != nil {
			sp.IsDraft = *in.IsDraft
		}
		sp.Media = nil
		sp.ServiceOfferings = nil

		if err := repo.SaveSpecialistFields(ctx, sp); err != nil {
			return err
		}
		if err := repo.ReplaceMedia(ctx, sp.ID, buildMedia(in.Media)); err != nil {
			return err
		}
		if err := repo.ReplaceOfferings(ctx, sp.ID, buildOfferings(in.ServiceOfferings)); err != nil {
			return err
		}

		published = wasDraft && !sp.IsDraft
		updated, err = repo.GetSpecialist(ctx, sp.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("specialist %d: %w", id, err)
		}
		return nil, fmt.Errorf("failed to update specialist: %w", err)
	}

	if published {
		s.producer.Produce(events.SpecialistPublished, updated.Slug, updated)
	}
	return updated, nil
}

// DeleteSpecialist soft deletes a listing. Deleting an already deleted
// listing succeeds and keeps the original deleted_at.
func (s *SpecialistService) DeleteSpecialist(ctx context.Context, id uint) error {
	var deleted *model.Specialist
	err := s.store.WithTransaction(ctx, func(repo *repository.Repository) error {
		sp, err := repo.GetSpecialistUnscoped(ctx, id)
		if err != nil {
			return err
		}
		if sp.DeletedAt.Valid {
			return nil
		}
		if err := repo.SoftDeleteSpecialist(ctx, id); err != nil {
			return err
		}
		deleted = sp
		return nil
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("specialist %d: %w", id, err)
		}
		return fmt.Errorf("failed to delete specialist: %w", err)
	}

	if deleted != nil {
		s.producer.Produce(events.SpecialistDeleted, deleted.Slug, map[string]interface{}{"id": deleted.ID, "slug": deleted.Slug})
	}
	return nil
}

func (s *SpecialistService) GetSpecialist(ctx context.Context, id uint) (*model.Specialist, error) {
	sp, err := s.store.GetSpecialist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("specialist %d: %w", id, err)
	}
	return sp, nil
}

func (s *SpecialistService) GetSpecialistBySlug(ctx context.Context, slug string) (*model.Specialist, error) {
	sp, err := s.store.GetSpecialistBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("specialist %q: %w", slug, err)
	}
	return sp, nil
}

// GetSpecialistByOwner looks the listing up by secretary email first and
// falls back to the secretary name. The first match wins.
func (s *SpecialistService) GetSpecialistByOwner(ctx context.Context, email, name string) (*model.Specialist, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" && name == "" {
		return nil, fmt.Errorf("%w: email or name is required", e.ErrValidation)
	}

	if email != "" {
		sp, err := s.store.FindSpecialistByOwnerEmail(ctx, email)
		if err == nil {
			return sp, nil
		}
		if !errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("failed to find specialist by email: %w", err)
		}
	}
	if name != "" {
		sp, err := s.store.FindSpecialistByOwnerName(ctx, name)
		if err == nil {
			return sp, nil
		}
		if !errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("failed to find specialist by name: %w", err)
		}
	}
	return nil, fmt.Errorf("specialist for owner: %w", e.ErrNotFound)
}

// ListSpecialists returns live listings, drafts included unless filtered.
func (s *SpecialistService) ListSpecialists(ctx context.Context, q SpecialistQuery) ([]model.Specialist, int64, error) {
	list, total, err := s.store.ListSpecialists(ctx, repository.SpecialistFilter{
		IsDraft: q.IsDraft,
		Keyword: strings.TrimSpace(q.Keyword),
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list specialists: %w", err)
	}
	return list, total, nil
}

// SetVerificationStatus records the admin review outcome of a listing.
func (s *SpecialistService) SetVerificationStatus(ctx context.Context, id uint, status model.VerificationStatus) (*model.Specialist, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: verification_status %q", e.ErrInvalidStatus, status)
	}
	if err := s.store.SetVerificationStatus(ctx, id, status); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("specialist %d: %w", id, err)
		}
		return nil, fmt.Errorf("failed to set verification status: %w", err)
	}
	return s.GetSpecialist(ctx, id)
}

func (s *SpecialistService) validate(ctx context.Context, in *SpecialistInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", e.ErrValidation)
	}
	if in.DurationDays < 0 {
		return fmt.Errorf("%w: duration_days must not be negative", e.ErrValidation)
	}
	if in.VerificationStatus != "" && !in.VerificationStatus.Valid() {
		return fmt.Errorf("%w: verification_status %q", e.ErrValidation, in.VerificationStatus)
	}

	if len(in.Media) > model.MaxMediaPerSpecialist {
		return fmt.Errorf("%w: at most %d media items are allowed", e.ErrValidation, model.MaxMediaPerSpecialist)
	}
	for i, m := range in.Media {
		if strings.TrimSpace(m.URL) == "" {
			return fmt.Errorf("%w: media[%d].url is required", e.ErrValidation, i)
		}
		if m.MimeType != "" && !m.MimeType.Valid() {
			return fmt.Errorf("%w: media[%d].mime_type %q is not supported", e.ErrValidation, i, m.MimeType)
		}
		if m.MediaType != "" && !m.MediaType.Valid() {
			return fmt.Errorf("%w: media[%d].media_type %q is not supported", e.ErrValidation, i, m.MediaType)
		}
		if m.FileSize < 0 {
			return fmt.Errorf("%w: media[%d].file_size must not be negative", e.ErrValidation, i)
		}
	}

	if len(in.ServiceOfferings) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(in.ServiceOfferings))
	ids := make([]uint, 0, len(in.ServiceOfferings))
	for i, o := range in.ServiceOfferings {
		if o.ServiceOfferingMasterListID == 0 {
			return fmt.Errorf("%w: service_offerings[%d].service_offering_master_list_id is required", e.ErrValidation, i)
		}
		if _, dup := seen[o.ServiceOfferingMasterListID]; dup {
			return fmt.Errorf("%w: service offering %d selected twice", e.ErrValidation, o.ServiceOfferingMasterListID)
		}
		seen[o.ServiceOfferingMasterListID] = struct{}{}
		ids = append(ids, o.ServiceOfferingMasterListID)
	}
	count, err := s.store.CountCatalogEntries(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check service offerings: %w", err)
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("%w: unknown service offering selected", e.ErrValidation)
	}
	return nil
}

func (s *SpecialistService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := SlugBase(title)
	for i := 0; i < slugAttempts; i++ {
		candidate := base + "-" + slugSuffix()
		exists, err := s.store.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		s.logger.Debug("slug collision", zap.String("slug", candidate))
	}
	return "", fmt.Errorf("%w: could not allocate a unique slug for %q", e.ErrConstraint, title)
}

func quoteFor(in SpecialistInput) (Quote, error) {
	prices := make([]decimal.Decimal, 0, len(in.ServiceOfferings))
	for _, o := range in.ServiceOfferings {
		prices = append(prices, offeringPrice(o))
	}
	return ComputePrice(in.BasePrice, prices...)
}

func offeringPrice(o OfferingInput) decimal.Decimal {
	if o.Price == nil {
		return decimal.Zero
	}
	return o.Price.Round(PriceScale)
}

func applyInput(sp *model.Specialist, in SpecialistInput, q Quote) {
	sp.Title = in.Title
	sp.Description = strings.TrimSpace(in.Description)
	sp.BasePrice = q.BasePrice
	sp.PlatformFee = q.PlatformFee
	sp.FinalPrice = q.FinalPrice
	sp.DurationDays = in.DurationDays
	sp.SecretaryName = strings.TrimSpace(in.SecretaryName)
	sp.SecretaryCompany = strings.TrimSpace(in.SecretaryCompany)
	sp.SecretaryEmail = strings.ToLower(strings.TrimSpace(in.SecretaryEmail))
	sp.SecretaryPhone = strings.TrimSpace(in.SecretaryPhone)
	sp.SecretaryBio = in.SecretaryBio
	sp.AvatarURL = in.AvatarURL
	sp.CompanyLogoURL = in.CompanyLogoURL
	sp.Certifications = normalizeCertifications(in.Certifications)
}

// normalizeCertifications trims entries and drops blanks and duplicates,
// keeping the first occurrence order.
func normalizeCertifications(certs []string) []string {
	result := make([]string, 0, len(certs))
	seen := make(map[string]struct{}, len(certs))
	for _, c := range certs {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}

func buildMedia(in []MediaInput) []model.Media {
	media := make([]model.Media, 0, len(in))
	for i, m := range in {
		mediaType := m.MediaType
		if mediaType == "" {
			mediaType = model.MediaImage
		}
		media = append(media, model.Media{
			URL:          strings.TrimSpace(m.URL),
			FileName:     m.FileName,
			FileSize:     m.FileSize,
			MimeType:     m.MimeType,
			MediaType:    mediaType,
			DisplayOrder: i,
		})
	}
	return media
}

func buildOfferings(in []OfferingInput) []model.ServiceOffering {
	offerings := make([]model.ServiceOffering, 0, len(in))
	for _, o := range in {
		offerings = append(offerings, model.ServiceOffering{
			ServiceOfferingMasterListID: o.ServiceOfferingMasterListID,
			Price:                       offeringPrice(o),
		})
	}
	return offerings
}
