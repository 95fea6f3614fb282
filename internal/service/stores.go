package service

import (
	"context"
	"time"

	"harumnesia/internal/model"
	"harumnesia/internal/recommend"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerfumeStore is the read side of the local perfume collection.
type PerfumeStore interface {
	FindAll(ctx context.Context) ([]model.Perfume, error)
	FindPage(ctx context.Context, skip, limit int64) ([]model.Perfume, error)
	Count(ctx context.Context) (int64, error)
	FindByIdentifier(ctx context.Context, id string) (*model.Perfume, error)
	FindByIdentifiers(ctx context.Context, ids []string) ([]model.Perfume, error)
	FindByBrand(ctx context.Context, brand string) ([]model.Perfume, error)
	FindByBrandInsensitive(ctx context.Context, brand string) ([]model.Perfume, error)
	FindByBrandRef(ctx context.Context, name string, brandID primitive.ObjectID) ([]model.Perfume, error)
	DistinctBrands(ctx context.Context) ([]string, error)
	Sample(ctx context.Context, size int) ([]model.Perfume, error)
}

// InterPerfumeStore is the international reference collection.
type InterPerfumeStore interface {
	FindPage(ctx context.Context, skip, limit int64) ([]model.InterPerfume, error)
	FindByBrand(ctx context.Context, brand string) ([]model.InterPerfume, error)
	Search(ctx context.Context, query string, limit int64) ([]model.InterPerfume, error)
	DistinctBrands(ctx context.Context) ([]string, error)
	FindNames(ctx context.Context) ([]model.InterPerfume, error)
}

type BrandStore interface {
	FindAll(ctx context.Context) ([]model.Brand, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Brand, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, brand *model.Brand) error
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Recommender is the ML service.
type Recommender interface {
	Recommend(ctx context.Context, payload interface{}, timeout time.Duration) ([]recommend.Item, error)
}
