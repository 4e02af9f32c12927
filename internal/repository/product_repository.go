package repository

import (
	"context"
	"log/slog"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

const CollectionName = "products"

type ProductRepository struct {
	collection *mongo.Collection
}

var ProductRepositoryTracer = otel.Tracer("ProductRepository")

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(CollectionName),
	}
}

func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.CountAll")
	defer span.End()

	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperror.Store(errors.Wrap(err, "count products"))
	}
	return n, nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []model.Product) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.InsertMany")
	defer span.End()
	logger.Info(ctx, "Repository", slog.Int("count", len(products)))

	docs := make([]interface{}, len(products))
	stored := make([]model.Product, len(products))
	for i, p := range products {
		p.ID = primitive.NewObjectID()
		p.Normalize()
		stored[i] = p
		docs[i] = p
	}
	if len(docs) == 0 {
		return stored, nil
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, apperror.Store(errors.Wrap(err, "insert products"))
	}
	return stored, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.find(ctx, bson.M{}, "find products")
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()
	logger.Info(ctx, "Repository", slog.String("category", category))

	return r.find(ctx, bson.M{"category": category}, "find products by category")
}

func (r *ProductRepository) FindByVariantColor(ctx context.Context, color string) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByVariantColor")
	defer span.End()
	logger.Info(ctx, "Repository", slog.String("color", color))

	return r.find(ctx, bson.M{"variants.color": color}, "find products by variant color")
}

func (r *ProductRepository) InsertOne(ctx context.Context, product model.Product) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.InsertOne")
	defer span.End()
	logger.Info(ctx, "Repository")

	product.ID = primitive.NewObjectID()
	product.Normalize()
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, apperror.Store(errors.Wrap(err, "insert product"))
	}
	return &product, nil
}

// DeleteByID treats an id that is not a valid ObjectID as not found, since
// no stored product can carry it.
func (r *ProductRepository) DeleteByID(ctx context.Context, id string) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.DeleteByID")
	defer span.End()
	logger.Info(ctx, "Repository", slog.String("id", id))

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Product not found")
	}

	var product model.Product
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperror.Store(errors.Wrap(err, "delete product"))
	}
	product.Normalize()
	return &product, nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, op string) ([]model.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, apperror.Store(errors.Wrap(err, op))
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0)
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, apperror.Store(errors.Wrap(err, op))
		}
		product.Normalize()
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperror.Store(errors.Wrap(err, op))
	}
	return products, nil
}
