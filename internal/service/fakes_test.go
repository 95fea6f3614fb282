package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harumnesia/internal/model"
	"harumnesia/internal/recommend"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePerfumeStore struct {
	perfumes []model.Perfume
	err      error

	lastSkip, lastLimit int64
	identifierQueries   int
}

func clonePerfumes(in []model.Perfume) []model.Perfume {
	out := make([]model.Perfume, len(in))
	copy(out, in)
	return out
}

func (f *fakePerfumeStore) filter(keep func(p model.Perfume) bool) ([]model.Perfume, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Perfume
	for _, p := range f.perfumes {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePerfumeStore) FindAll(ctx context.Context) ([]model.Perfume, error) {
	if f.err != nil {
		return nil, f.err
	}
	return clonePerfumes(f.perfumes), nil
}

func (f *fakePerfumeStore) FindPage(ctx context.Context, skip, limit int64) ([]model.Perfume, error) {
	f.lastSkip, f.lastLimit = skip, limit
	if f.err != nil {
		return nil, f.err
	}
	if skip >= int64(len(f.perfumes)) {
		return []model.Perfume{}, nil
	}
	end := skip + limit
	if end > int64(len(f.perfumes)) {
		end = int64(len(f.perfumes))
	}
	return clonePerfumes(f.perfumes[skip:end]), nil
}

func (f *fakePerfumeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.perfumes)), f.err
}

func hasIdentifier(p model.Perfume, ids ...string) bool {
	for _, own := range p.Identifiers() {
		for _, id := range ids {
			if own == id {
				return true
			}
		}
	}
	return false
}

func (f *fakePerfumeStore) FindByIdentifier(ctx context.Context, id string) (*model.Perfume, error) {
	found, err := f.filter(func(p model.Perfume) bool { return hasIdentifier(p, id) })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("find perfume %s: %w", id, model.ErrNotFound)
	}
	return &found[0], nil
}

func (f *fakePerfumeStore) FindByIdentifiers(ctx context.Context, ids []string) ([]model.Perfume, error) {
	f.identifierQueries++
	return f.filter(func(p model.Perfume) bool { return hasIdentifier(p, ids...) })
}

func (f *fakePerfumeStore) FindByBrand(ctx context.Context, brand string) ([]model.Perfume, error) {
	return f.filter(func(p model.Perfume) bool { return p.Brand == brand })
}

func (f *fakePerfumeStore) FindByBrandInsensitive(ctx context.Context, brand string) ([]model.Perfume, error) {
	return f.filter(func(p model.Perfume) bool { return strings.EqualFold(p.Brand, brand) })
}

func (f *fakePerfumeStore) FindByBrandRef(ctx context.Context, name string, brandID primitive.ObjectID) ([]model.Perfume, error) {
	return f.filter(func(p model.Perfume) bool {
		return strings.EqualFold(p.Brand, name) || (p.BrandID != nil && *p.BrandID == brandID)
	})
}

func (f *fakePerfumeStore) DistinctBrands(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, p := range f.perfumes {
		out = append(out, p.Brand)
	}
	return out, nil
}

func (f *fakePerfumeStore) Sample(ctx context.Context, size int) ([]model.Perfume, error) {
	if f.err != nil {
		return nil, f.err
	}
	if size > len(f.perfumes) {
		size = len(f.perfumes)
	}
	return clonePerfumes(f.perfumes[:size]), nil
}

type fakeInterStore struct {
	perfumes []model.InterPerfume
	err      error

	lastSkip, lastLimit int64
	lastQuery           string
}

func (f *fakeInterStore) FindPage(ctx context.Context, skip, limit int64) ([]model.InterPerfume, error) {
	f.lastSkip, f.lastLimit = skip, limit
	return f.perfumes, f.err
}

func (f *fakeInterStore) FindByBrand(ctx context.Context, brand string) ([]model.InterPerfume, error) {
	var out []model.InterPerfume
	for _, p := range f.perfumes {
		if strings.EqualFold(p.Brand, brand) {
			out = append(out, p)
		}
	}
	return out, f.err
}

func (f *fakeInterStore) Search(ctx context.Context, query string, limit int64) ([]model.InterPerfume, error) {
	f.lastQuery, f.lastLimit = query, limit
	return f.perfumes, f.err
}

func (f *fakeInterStore) DistinctBrands(ctx context.Context) ([]string, error) {
	var out []string
	for _, p := range f.perfumes {
		out = append(out, p.Brand)
	}
	return out, f.err
}

func (f *fakeInterStore) FindNames(ctx context.Context) ([]model.InterPerfume, error) {
	return f.perfumes, f.err
}

type fakeBrandStore struct {
	brands  map[primitive.ObjectID]*model.Brand
	updates int
}

func newFakeBrandStore(brands ...model.Brand) *fakeBrandStore {
	f := &fakeBrandStore{brands: map[primitive.ObjectID]*model.Brand{}}
	for i := range brands {
		b := brands[i]
		f.brands[b.ID] = &b
	}
	return f
}

func (f *fakeBrandStore) FindAll(ctx context.Context) ([]model.Brand, error) {
	out := []model.Brand{}
	for _, b := range f.brands {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBrandStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, fmt.Errorf("find brand %s: %w", id.Hex(), model.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBrandStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, b := range f.brands {
		if strings.EqualFold(b.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBrandStore) Insert(ctx context.Context, brand *model.Brand) error {
	brand.ID = primitive.NewObjectID()
	brand.CreatedAt = time.Now().UTC()
	brand.UpdatedAt = brand.CreatedAt
	cp := *brand
	f.brands[brand.ID] = &cp
	return nil
}

func (f *fakeBrandStore) Update(ctx context.Context, brand *model.Brand) error {
	if _, ok := f.brands[brand.ID]; !ok {
		return fmt.Errorf("update brand: %w", model.ErrNotFound)
	}
	f.updates++
	cp := *brand
	f.brands[brand.ID] = &cp
	return nil
}

func (f *fakeBrandStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.brands[id]; !ok {
		return fmt.Errorf("delete brand: %w", model.ErrNotFound)
	}
	delete(f.brands, id)
	return nil
}

type fakeRecommender struct {
	items []recommend.Item
	err   error

	payload interface{}
	timeout time.Duration
	calls   int
}

func (f *fakeRecommender) Recommend(ctx context.Context, payload interface{}, timeout time.Duration) ([]recommend.Item, error) {
	f.calls++
	f.payload, f.timeout = payload, timeout
	return f.items, f.err
}

func score(v float64) *float64 { return &v }
