package service

import (
	"context"
	"fmt"
	"strings"

	"harumnesia/internal/model"

	"go.opentelemetry.io/otel"
)

const (
	DefaultInterLimit  = 100
	MaxInterLimit      = 500
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

type InterPerfumeService struct {
	store InterPerfumeStore
}

var InterPerfumeServiceTracer = otel.Tracer("InterPerfumeService")

func NewInterPerfumeService(store InterPerfumeStore) *InterPerfumeService {
	return &InterPerfumeService{store: store}
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func (s *InterPerfumeService) List(ctx context.Context, page, limit int) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeServiceTracer.Start(ctx, "InterPerfumeService.List")
	defer span.End()

	limit = clampLimit(limit, DefaultInterLimit, MaxInterLimit)
	skip, ok := pageSkip(page, limit)
	if !ok {
		return []model.InterPerfume{}, nil
	}
	return s.store.FindPage(ctx, skip, int64(limit))
}

func (s *InterPerfumeService) Brands(ctx context.Context) ([]string, error) {
	ctx, span := InterPerfumeServiceTracer.Start(ctx, "InterPerfumeService.Brands")
	defer span.End()

	brands, err := s.store.DistinctBrands(ctx)
	if err != nil {
		return nil, err
	}
	return SortBrands(brands), nil
}

func (s *InterPerfumeService) ByBrand(ctx context.Context, brand string) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeServiceTracer.Start(ctx, "InterPerfumeService.ByBrand")
	defer span.End()

	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, fmt.Errorf("brand is required: %w", model.ErrValidation)
	}
	return s.store.FindByBrand(ctx, brand)
}

func (s *InterPerfumeService) Search(ctx context.Context, query string, limit int) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeServiceTracer.Start(ctx, "InterPerfumeService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query parameter q is required: %w", model.ErrValidation)
	}
	return s.store.Search(ctx, query, int64(clampLimit(limit, DefaultSearchLimit, MaxSearchLimit)))
}

// Dropdown reshapes the collection for the questionnaire selects.
func (s *InterPerfumeService) Dropdown(ctx context.Context) (*model.DropdownData, error) {
	ctx, span := InterPerfumeServiceTracer.Start(ctx, "InterPerfumeService.Dropdown")
	defer span.End()

	brands, err := s.store.DistinctBrands(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.store.FindNames(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.DropdownItem, 0, len(names))
	for _, p := range names {
		name := strings.TrimSpace(p.Perfume)
		if name == "" {
			continue
		}
		items = append(items, model.DropdownItem{
			ID:    p.Key(),
			Name:  name,
			Brand: strings.TrimSpace(p.Brand),
		})
	}

	return &model.DropdownData{
		Brands:   SortBrands(brands),
		Perfumes: items,
	}, nil
}
