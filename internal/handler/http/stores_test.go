package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"harumnesia/internal/model"
	"harumnesia/internal/recommend"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memPerfumes struct {
	docs []model.Perfume
	err  error
}

func (m *memPerfumes) list(keep func(model.Perfume) bool) ([]model.Perfume, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Perfume{}
	for _, p := range m.docs {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchesID(p model.Perfume, ids []string) bool {
	for _, own := range p.Identifiers() {
		for _, id := range ids {
			if own == id {
				return true
			}
		}
	}
	return false
}

func (m *memPerfumes) FindAll(ctx context.Context) ([]model.Perfume, error) {
	return m.list(func(model.Perfume) bool { return true })
}

func (m *memPerfumes) FindPage(ctx context.Context, skip, limit int64) ([]model.Perfume, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if skip >= int64(len(all)) {
		return []model.Perfume{}, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (m *memPerfumes) Count(ctx context.Context) (int64, error) {
	return int64(len(m.docs)), m.err
}

func (m *memPerfumes) FindByIdentifier(ctx context.Context, id string) (*model.Perfume, error) {
	found, err := m.list(func(p model.Perfume) bool { return matchesID(p, []string{id}) })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("find perfume %s: %w", id, model.ErrNotFound)
	}
	return &found[0], nil
}

func (m *memPerfumes) FindByIdentifiers(ctx context.Context, ids []string) ([]model.Perfume, error) {
	return m.list(func(p model.Perfume) bool { return matchesID(p, ids) })
}

func (m *memPerfumes) FindByBrand(ctx context.Context, brand string) ([]model.Perfume, error) {
	return m.list(func(p model.Perfume) bool { return p.Brand == brand })
}

func (m *memPerfumes) FindByBrandInsensitive(ctx context.Context, brand string) ([]model.Perfume, error) {
	return m.list(func(p model.Perfume) bool { return strings.EqualFold(p.Brand, brand) })
}

func (m *memPerfumes) FindByBrandRef(ctx context.Context, name string, id primitive.ObjectID) ([]model.Perfume, error) {
	return m.list(func(p model.Perfume) bool {
		return strings.EqualFold(p.Brand, name) || (p.BrandID != nil && *p.BrandID == id)
	})
}

func (m *memPerfumes) DistinctBrands(ctx context.Context) ([]string, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range all {
		out = append(out, p.Brand)
	}
	return out, nil
}

func (m *memPerfumes) Sample(ctx context.Context, size int) ([]model.Perfume, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if size < len(all) {
		all = all[:size]
	}
	return all, nil
}

type memInter struct {
	docs []model.InterPerfume
}

func (m *memInter) FindPage(ctx context.Context, skip, limit int64) ([]model.InterPerfume, error) {
	return m.docs, nil
}

func (m *memInter) FindByBrand(ctx context.Context, brand string) ([]model.InterPerfume, error) {
	out := []model.InterPerfume{}
	for _, p := range m.docs {
		if strings.EqualFold(p.Brand, brand) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memInter) Search(ctx context.Context, q string, limit int64) ([]model.InterPerfume, error) {
	out := []model.InterPerfume{}
	for _, p := range m.docs {
		if strings.Contains(strings.ToLower(p.Perfume+" "+p.Brand), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memInter) DistinctBrands(ctx context.Context) ([]string, error) {
	var out []string
	for _, p := range m.docs {
		out = append(out, p.Brand)
	}
	return out, nil
}

func (m *memInter) FindNames(ctx context.Context) ([]model.InterPerfume, error) {
	return m.docs, nil
}

type memBrands struct {
	docs map[primitive.ObjectID]model.Brand
}

func (m *memBrands) FindAll(ctx context.Context) ([]model.Brand, error) {
	out := []model.Brand{}
	for _, b := range m.docs {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBrands) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Brand, error) {
	b, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("find brand: %w", model.ErrNotFound)
	}
	return &b, nil
}

func (m *memBrands) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, b := range m.docs {
		if strings.EqualFold(b.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBrands) Insert(ctx context.Context, b *model.Brand) error {
	b.ID = primitive.NewObjectID()
	b.CreatedAt, b.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	m.docs[b.ID] = *b
	return nil
}

func (m *memBrands) Update(ctx context.Context, b *model.Brand) error {
	if _, ok := m.docs[b.ID]; !ok {
		return fmt.Errorf("update brand: %w", model.ErrNotFound)
	}
	m.docs[b.ID] = *b
	return nil
}

func (m *memBrands) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("delete brand: %w", model.ErrNotFound)
	}
	delete(m.docs, id)
	return nil
}

type stubML struct {
	items []recommend.Item
	err   error
}

func (s *stubML) Recommend(ctx context.Context, payload interface{}, timeout time.Duration) ([]recommend.Item, error) {
	return s.items, s.err
}

func (s *stubML) State() string { return "closed" }

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

var errDown = errors.New("server selection error: context deadline exceeded")
