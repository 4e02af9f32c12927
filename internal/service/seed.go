package service

import (
	"context"
	"log/slog"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/model"
)

func SampleProducts() []model.Product {
	return []model.Product{
		{
			Name:     "Nike Jacket",
			Price:    200,
			Category: "Apparel",
			Variants: []model.Variant{
				{Color: "Black", Size: "M", Stock: 10},
				{Color: "Gray", Size: "L", Stock: 5},
			},
		},
		{
			Name:     "Smartphone",
			Price:    600,
			Category: "Electronics",
			Variants: []model.Variant{},
		},
		{
			Name:     "Running Shoes",
			Price:    120,
			Category: "Footwear",
			Variants: []model.Variant{
				{Color: "Red", Size: "9", Stock: 7},
				{Color: "Blue", Size: "10", Stock: 4},
			},
		},
	}
}

// SeedSampleProducts inserts SampleProducts when the collection is empty and
// reports how many products were added. It does not dedupe by name: a store
// that already holds anything is left untouched.
func (s *ProductService) SeedSampleProducts(ctx context.Context) (int, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.SeedSampleProducts")
	defer span.End()

	count, err := s.store.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info(ctx, "Sample data skipped", slog.Int64("existing", count))
		return 0, nil
	}

	inserted, err := s.store.InsertMany(ctx, SampleProducts())
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "Sample data inserted", slog.Int("count", len(inserted)))
	return len(inserted), nil
}
