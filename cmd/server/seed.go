package main

import (
	"context"
	"log/slog"

	"ecommerce-api/internal/logger"
)

type seeder interface {
	SeedSampleProducts(ctx context.Context) (int, error)
}

// seedInBackground runs the startup seeding without holding up the
// listeners. The returned channel closes when seeding is over.
func seedInBackground(ctx context.Context, s seeder) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		n, err := s.SeedSampleProducts(ctx)
		if err != nil {
			logger.Error(ctx, "Error seeding database", slog.String("error", err.Error()))
			return
		}
		if n > 0 {
			logger.Info(ctx, "Seeded sample products", slog.Int("count", n))
		}
	}()
	return done
}
