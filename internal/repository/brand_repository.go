package repository

import (
	"context"
	"log/slog"
	"time"

	"harumnesia/internal/logger"
	"harumnesia/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

const BrandCollection = "brands"

type BrandRepository struct {
	collection *mongo.Collection
}

var BrandRepositoryTracer = otel.Tracer("BrandRepository")

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{
		collection: db.Collection(BrandCollection),
	}
}

// EnsureIndexes creates the unique index on name.
func (r *BrandRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *BrandRepository) FindAll(ctx context.Context) ([]model.Brand, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.FindAll")
	defer span.End()
	logger.Debug(ctx, "Repository")

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	brands := []model.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *BrandRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Brand, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.FindByID")
	defer span.End()
	logger.Debug(ctx, "Repository", slog.String("id", id.Hex()))

	var brand model.Brand
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&brand); err != nil {
		return nil, mapError("find brand "+id.Hex(), err)
	}
	return &brand, nil
}

func (r *BrandRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.ExistsByName")
	defer span.End()

	count, err := r.collection.CountDocuments(ctx, bson.M{"name": ExactInsensitive(name)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BrandRepository) Insert(ctx context.Context, brand *model.Brand) error {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository", slog.String("brand", brand.Name))

	now := time.Now().UTC()
	brand.ID = primitive.NewObjectID()
	brand.CreatedAt = now
	brand.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, brand)
	return mapError("insert brand "+brand.Name, err)
}

// Update overwrites every mutable field of the stored brand.
func (r *BrandRepository) Update(ctx context.Context, brand *model.Brand) error {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.Update")
	defer span.End()
	logger.Info(ctx, "Repository", slog.String("id", brand.ID.Hex()))

	brand.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":            brand.Name,
			"image":           brand.Image,
			"description":     brand.Description,
			"establishedYear": brand.EstablishedYear,
			"headquarters":    brand.Headquarters,
			"website":         brand.Website,
			"updatedAt":       brand.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": brand.ID}, update)
	if err != nil {
		return mapError("update brand "+brand.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mapError("update brand "+brand.ID.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

func (r *BrandRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository", slog.String("id", id.Hex()))

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mapError("delete brand "+id.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

func (r *BrandRepository) InsertMany(ctx context.Context, brands []model.Brand) (int, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.InsertMany")
	defer span.End()

	if len(brands) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(brands))
	now := time.Now().UTC()
	for i := range brands {
		if brands[i].ID.IsZero() {
			brands[i].ID = primitive.NewObjectID()
		}
		if brands[i].CreatedAt.IsZero() {
			brands[i].CreatedAt = now
		}
		brands[i].UpdatedAt = now
		docs[i] = brands[i]
	}
	res, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil && err != nil && mongo.IsDuplicateKeyError(err) {
		return len(res.InsertedIDs), nil
	}
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *BrandRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.DeleteAll")
	defer span.End()

	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
