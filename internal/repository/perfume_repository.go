package repository

import (
	"context"
	"log/slog"

	"harumnesia/internal/logger"
	"harumnesia/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// LocalCollection holds the Indonesian perfume catalog.
const LocalCollection = "localdb"

type PerfumeRepository struct {
	collection *mongo.Collection
}

var PerfumeRepositoryTracer = otel.Tracer("PerfumeRepository")

func NewPerfumeRepository(db *mongo.Database) *PerfumeRepository {
	return &PerfumeRepository{
		collection: db.Collection(LocalCollection),
	}
}

func (r *PerfumeRepository) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]model.Perfume, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	perfumes := []model.Perfume{}
	if err := cursor.All(ctx, &perfumes); err != nil {
		return nil, err
	}
	return perfumes, nil
}

func (r *PerfumeRepository) FindAll(ctx context.Context) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindAll")
	defer span.End()
	logger.Debug(ctx, "Repository")

	return r.find(ctx, bson.M{})
}

func (r *PerfumeRepository) FindPage(ctx context.Context, skip, limit int64) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindPage")
	defer span.End()
	logger.Debug(ctx, "Repository", slog.Int64("skip", skip), slog.Int64("limit", limit))

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *PerfumeRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.Count")
	defer span.End()

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *PerfumeRepository) FindByIdentifier(ctx context.Context, id string) (*model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindByIdentifier")
	defer span.End()
	logger.Debug(ctx, "Repository", slog.String("id", id))

	var perfume model.Perfume
	err := r.collection.FindOne(ctx, IdentifierFilter([]string{id})).Decode(&perfume)
	if err != nil {
		return nil, mapError("find perfume "+id, err)
	}
	return &perfume, nil
}

func (r *PerfumeRepository) FindByIdentifiers(ctx context.Context, ids []string) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindByIdentifiers")
	defer span.End()
	logger.Debug(ctx, "Repository", slog.Int("ids", len(ids)))

	if len(ids) == 0 {
		return []model.Perfume{}, nil
	}
	return r.find(ctx, IdentifierFilter(ids))
}

func (r *PerfumeRepository) FindByBrand(ctx context.Context, brand string) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindByBrand")
	defer span.End()

	return r.find(ctx, bson.M{"brand": brand})
}

func (r *PerfumeRepository) FindByBrandInsensitive(ctx context.Context, brand string) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindByBrandInsensitive")
	defer span.End()

	return r.find(ctx, bson.M{"brand": ExactInsensitive(brand)})
}

// FindByBrandRef matches perfumes linked to a brand by name or by brandId;
// older documents only carry the name.
func (r *PerfumeRepository) FindByBrandRef(ctx context.Context, name string, brandID primitive.ObjectID) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.FindByBrandRef")
	defer span.End()

	filter := bson.M{"$or": bson.A{
		bson.M{"brand": ExactInsensitive(name)},
		bson.M{"brandId": brandID},
	}}
	return r.find(ctx, filter)
}

func (r *PerfumeRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.DistinctBrands")
	defer span.End()

	values, err := r.collection.Distinct(ctx, "brand", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctStrings(values), nil
}

func (r *PerfumeRepository) Sample(ctx context.Context, size int) ([]model.Perfume, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.Sample")
	defer span.End()

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": size}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	perfumes := []model.Perfume{}
	if err := cursor.All(ctx, &perfumes); err != nil {
		return nil, err
	}
	return perfumes, nil
}

// InsertMany is used by the seeder; documents are inserted as given.
func (r *PerfumeRepository) InsertMany(ctx context.Context, docs []interface{}) (int, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.InsertMany")
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

func (r *PerfumeRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := PerfumeRepositoryTracer.Start(ctx, "PerfumeRepository.DeleteAll")
	defer span.End()

	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
