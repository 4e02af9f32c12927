package repository

import (
	"context"
	"sync"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is an in-memory implementation of the product store
// with the same matching and error semantics as ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products []model.Product
	err      error
}

func NewMockProductRepository(seed ...model.Product) *MockProductRepository {
	r := &MockProductRepository{}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		p.Normalize()
		r.products = append(r.products, p)
	}
	return r
}

// FailWith makes every following call return err wrapped as a store error.
// Passing nil restores normal behavior.
func (r *MockProductRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MockProductRepository) CountAll(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, apperror.Store(r.err)
	}
	return int64(len(r.products)), nil
}

func (r *MockProductRepository) InsertMany(ctx context.Context, products []model.Product) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, apperror.Store(r.err)
	}
	stored := make([]model.Product, len(products))
	for i, p := range products {
		p.ID = primitive.NewObjectID()
		p.Normalize()
		stored[i] = p
	}
	r.products = append(r.products, stored...)
	return stored, nil
}

func (r *MockProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return r.filter(func(model.Product) bool { return true })
}

func (r *MockProductRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return r.filter(func(p model.Product) bool { return p.Category == category })
}

func (r *MockProductRepository) FindByVariantColor(ctx context.Context, color string) ([]model.Product, error) {
	return r.filter(func(p model.Product) bool {
		for _, v := range p.Variants {
			if v.Color == color {
				return true
			}
		}
		return false
	})
}

func (r *MockProductRepository) InsertOne(ctx context.Context, product model.Product) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, apperror.Store(r.err)
	}
	product.ID = primitive.NewObjectID()
	product.Normalize()
	r.products = append(r.products, product)
	return &product, nil
}

func (r *MockProductRepository) DeleteByID(ctx context.Context, id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, apperror.Store(r.err)
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Product not found")
	}
	for i, p := range r.products {
		if p.ID == objID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &p, nil
		}
	}
	return nil, apperror.NotFound("Product not found")
}

func (r *MockProductRepository) filter(match func(model.Product) bool) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, apperror.Store(r.err)
	}
	out := make([]model.Product, 0)
	for _, p := range r.products {
		if match(p) {
			p.Variants = append([]model.Variant{}, p.Variants...)
			out = append(out, p)
		}
	}
	return out, nil
}
