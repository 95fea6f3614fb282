package repository

import (
	"context"
	"log/slog"

	"harumnesia/internal/logger"
	"harumnesia/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// InterCollection holds the international reference perfumes.
const InterCollection = "interdb"

type InterPerfumeRepository struct {
	collection *mongo.Collection
}

var InterPerfumeRepositoryTracer = otel.Tracer("InterPerfumeRepository")

func NewInterPerfumeRepository(db *mongo.Database) *InterPerfumeRepository {
	return &InterPerfumeRepository{
		collection: db.Collection(InterCollection),
	}
}

func (r *InterPerfumeRepository) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]model.InterPerfume, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	perfumes := []model.InterPerfume{}
	if err := cursor.All(ctx, &perfumes); err != nil {
		return nil, err
	}
	return perfumes, nil
}

func (r *InterPerfumeRepository) FindPage(ctx context.Context, skip, limit int64) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.FindPage")
	defer span.End()
	logger.Debug(ctx, "Repository", slog.Int64("skip", skip), slog.Int64("limit", limit))

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *InterPerfumeRepository) FindByBrand(ctx context.Context, brand string) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.FindByBrand")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "Perfume", Value: 1}})
	return r.find(ctx, bson.M{"Brand": ExactInsensitive(brand)}, opts)
}

func (r *InterPerfumeRepository) Search(ctx context.Context, query string, limit int64) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.Search")
	defer span.End()
	logger.Debug(ctx, "Repository", slog.String("q", query))

	re := ContainsInsensitive(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"Perfume": re},
		bson.M{"Brand": re},
	}}
	return r.find(ctx, filter, options.Find().SetLimit(limit))
}

func (r *InterPerfumeRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.DistinctBrands")
	defer span.End()

	values, err := r.collection.Distinct(ctx, "Brand", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctStrings(values), nil
}

// FindNames returns every perfume with only _id, Perfume and Brand loaded.
func (r *InterPerfumeRepository) FindNames(ctx context.Context) ([]model.InterPerfume, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.FindNames")
	defer span.End()

	opts := options.Find().
		SetProjection(bson.M{"Perfume": 1, "Brand": 1}).
		SetSort(bson.D{{Key: "Brand", Value: 1}, {Key: "Perfume", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *InterPerfumeRepository) InsertMany(ctx context.Context, docs []interface{}) (int, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.InsertMany")
	defer span.End()

	if len(docs) == 0 {
		return 0, nil
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *InterPerfumeRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := InterPerfumeRepositoryTracer.Start(ctx, "InterPerfumeRepository.DeleteAll")
	defer span.End()

	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
