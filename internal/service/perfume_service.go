package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"harumnesia/internal/logger"
	"harumnesia/internal/model"

	"go.opentelemetry.io/otel"
)

type PerfumeService struct {
	store PerfumeStore
}

var PerfumeServiceTracer = otel.Tracer("PerfumeService")

func NewPerfumeService(store PerfumeStore) *PerfumeService {
	return &PerfumeService{store: store}
}

func (s *PerfumeService) GetAll(ctx context.Context) ([]model.Perfume, error) {
	ctx, span := PerfumeServiceTracer.Start(ctx, "PerfumeService.GetAll")
	defer span.End()

	perfumes, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return normalizeAll(perfumes, ""), nil
}

// ParsePage reads a page number the way the old API did: anything that is
// not a positive integer means the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageSkip is the offset of page. ok is false when the offset does not fit
// in an int64.
func pageSkip(page, size int) (skip int64, ok bool) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || int64(page-1) > math.MaxInt64/int64(size) {
		return 0, false
	}
	return int64(page-1) * int64(size), true
}

// PageCount is ceil(count/size).
func PageCount(count int64, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return int((count + int64(size) - 1) / int64(size))
}

func (s *PerfumeService) GetPage(ctx context.Context, page int) (*model.PerfumePage, error) {
	ctx, span := PerfumeServiceTracer.Start(ctx, "PerfumeService.GetPage")
	defer span.End()

	if page < 1 {
		page = 1
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.PerfumePage{
		Perfumes: []model.Perfume{},
		Page:     page,
		Pages:    PageCount(count, model.PerfumePageSize),
		Count:    count,
	}
	if page > result.Pages {
		return result, nil
	}

	skip, _ := pageSkip(page, model.PerfumePageSize)
	perfumes, err := s.store.FindPage(ctx, skip, model.PerfumePageSize)
	if err != nil {
		return nil, err
	}
	result.Perfumes = normalizeAll(perfumes, "")
	return result, nil
}

func (s *PerfumeService) GetByID(ctx context.Context, id string) (*model.Perfume, error) {
	ctx, span := PerfumeServiceTracer.Start(ctx, "PerfumeService.GetByID")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("perfume id is required: %w", model.ErrValidation)
	}

	perfume, err := s.store.FindByIdentifier(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizePerfume(perfume, "")
	return perfume, nil
}

// GetByBrand tries an exact match first and falls back to a
// case-insensitive one; the stored brand spelling is kept.
func (s *PerfumeService) GetByBrand(ctx context.Context, brand string) ([]model.Perfume, error) {
	ctx, span := PerfumeServiceTracer.Start(ctx, "PerfumeService.GetByBrand")
	defer span.End()

	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, fmt.Errorf("brand name is required: %w", model.ErrValidation)
	}

	perfumes, err := s.store.FindByBrand(ctx, brand)
	if err != nil {
		return nil, err
	}
	if len(perfumes) == 0 {
		logger.Debug(ctx, "No exact brand match, retrying case-insensitively")
		perfumes, err = s.store.FindByBrandInsensitive(ctx, brand)
		if err != nil {
			return nil, err
		}
	}
	if len(perfumes) == 0 {
		return nil, fmt.Errorf("no perfumes for brand %q: %w", brand, model.ErrNotFound)
	}
	return normalizeAll(perfumes, brand), nil
}

func (s *PerfumeService) Brands(ctx context.Context) ([]string, error) {
	ctx, span := PerfumeServiceTracer.Start(ctx, "PerfumeService.Brands")
	defer span.End()

	brands, err := s.store.DistinctBrands(ctx)
	if err != nil {
		return nil, err
	}
	return SortBrands(brands), nil
}
