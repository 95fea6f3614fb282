package service

import (
	"context"
	"fmt"
	"strings"

	"harumnesia/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
)

type BrandService struct {
	brands   BrandStore
	perfumes PerfumeStore
}

var BrandServiceTracer = otel.Tracer("BrandService")

func NewBrandService(brands BrandStore, perfumes PerfumeStore) *BrandService {
	return &BrandService{brands: brands, perfumes: perfumes}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("brand id %q: %w", id, model.ErrInvalidID)
	}
	return oid, nil
}

func (s *BrandService) List(ctx context.Context) ([]model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.List")
	defer span.End()

	return s.brands.FindAll(ctx)
}

func (s *BrandService) Get(ctx context.Context, id string) (*model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Get")
	defer span.End()

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.brands.FindByID(ctx, oid)
}

func (s *BrandService) Create(ctx context.Context, p model.CreateBrandPayload) (*model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Create")
	defer span.End()

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("brand name is required: %w", model.ErrValidation)
	}

	exists, err := s.brands.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("brand %q: %w", name, model.ErrDuplicate)
	}

	brand := &model.Brand{
		Name:            name,
		Image:           strings.TrimSpace(p.Image),
		Description:     strings.TrimSpace(p.Description),
		EstablishedYear: p.EstablishedYear,
		Headquarters:    strings.TrimSpace(p.Headquarters),
		Website:         strings.TrimSpace(p.Website),
	}
	if err := s.brands.Insert(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// MergeBrand applies a partial update: every non-empty payload field wins,
// empty ones keep the stored value.
func MergeBrand(existing model.Brand, p model.UpdateBrandPayload) model.Brand {
	merged := existing
	merged.Name = firstSet(p.Name, existing.Name)
	merged.Image = firstSet(p.Image, existing.Image)
	merged.Description = firstSet(p.Description, existing.Description)
	merged.Headquarters = firstSet(p.Headquarters, existing.Headquarters)
	merged.Website = firstSet(p.Website, existing.Website)
	if p.EstablishedYear != 0 {
		merged.EstablishedYear = p.EstablishedYear
	}
	return merged
}

func firstSet(candidate, current string) string {
	if c := strings.TrimSpace(candidate); c != "" {
		return c
	}
	return current
}

// Update is a read-modify-write without version check; concurrent updates
// of the same brand resolve last-write-wins.
func (s *BrandService) Update(ctx context.Context, id string, p model.UpdateBrandPayload) (*model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Update")
	defer span.End()

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.brands.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	merged := MergeBrand(*existing, p)
	if !strings.EqualFold(merged.Name, existing.Name) {
		exists, err := s.brands.ExistsByName(ctx, merged.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("brand %q: %w", merged.Name, model.ErrDuplicate)
		}
	}

	if err := s.brands.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *BrandService) Delete(ctx context.Context, id string) error {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Delete")
	defer span.End()

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	return s.brands.Delete(ctx, oid)
}

// Perfumes lists the perfumes linked to a brand by name or brandId.
func (s *BrandService) Perfumes(ctx context.Context, id string) ([]model.Perfume, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Perfumes")
	defer span.End()

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	brand, err := s.brands.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	perfumes, err := s.perfumes.FindByBrandRef(ctx, brand.Name, brand.ID)
	if err != nil {
		return nil, err
	}
	return normalizeAll(perfumes, brand.Name), nil
}
