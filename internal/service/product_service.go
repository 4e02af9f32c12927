package service

import (
	"context"
	"log/slog"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"

	"go.opentelemetry.io/otel"
)

// ProductStore is the persistence contract the service needs. Every error
// it returns is an *apperror.Error.
type ProductStore interface {
	CountAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []model.Product) ([]model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindByVariantColor(ctx context.Context, color string) ([]model.Product, error)
	InsertOne(ctx context.Context, product model.Product) (*model.Product, error)
	DeleteByID(ctx context.Context, id string) (*model.Product, error)
}

type ProductService struct {
	store ProductStore
}

var ProductServiceTracer = otel.Tracer("ProductService")

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.GetAll")
	defer span.End()

	return s.store.FindAll(ctx)
}

func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.GetByCategory")
	defer span.End()

	return s.store.FindByCategory(ctx, category)
}

func (s *ProductService) GetByVariantColor(ctx context.Context, color string) ([]model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.GetByVariantColor")
	defer span.End()

	return s.store.FindByVariantColor(ctx, color)
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Create")
	defer span.End()

	product, err := ValidateProduct(input)
	if err != nil {
		logger.Warn(ctx, "Rejected product", slog.String("error", err.Error()))
		return nil, err
	}
	return s.store.InsertOne(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id string) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Delete")
	defer span.End()

	return s.store.DeleteByID(ctx, id)
}
