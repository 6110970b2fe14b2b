package service

import (
	"context"
	"fmt"

	"github.com/ariebrainware/cosec-marketplace/model"
)

type CatalogService struct {
	store Store
}

func NewCatalogService(store Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListOfferingCatalog(ctx context.Context) ([]model.ServiceOfferingMasterList, error) {
	entries, err := s.store.ListOfferingCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offering catalog: %w", err)
	}
	return entries, nil
}

// ListPlatformFeeTiers returns the seeded tier table. Pricing does not read it.
func (s *CatalogService) ListPlatformFeeTiers(ctx context.Context) ([]model.PlatformFee, error) {
	tiers, err := s.store.ListPlatformFees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list platform fees: %w", err)
	}
	return tiers, nil
}
