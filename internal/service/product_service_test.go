package service

import (
	"context"
	"errors"
	"testing"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductStore) InsertMany(ctx context.Context, products []model.Product) ([]model.Product, error) {
	args := m.Called(ctx, products)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductStore) FindAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductStore) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductStore) FindByVariantColor(ctx context.Context, color string) ([]model.Product, error) {
	args := m.Called(ctx, color)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductStore) InsertOne(ctx context.Context, product model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductStore) DeleteByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func TestSeedSampleProducts_EmptyStore(t *testing.T) {
	store := new(MockProductStore)
	svc := NewProductService(store)

	store.On("CountAll", mock.Anything).Return(int64(0), nil).Once()
	store.On("InsertMany", mock.Anything, SampleProducts()).Return(SampleProducts(), nil).Once()

	n, err := svc.SeedSampleProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	store.AssertExpectations(t)
}

func TestSeedSampleProducts_NonEmptyStore(t *testing.T) {
	store := new(MockProductStore)
	svc := NewProductService(store)

	store.On("CountAll", mock.Anything).Return(int64(3), nil).Once()

	n, err := svc.SeedSampleProducts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestSeedSampleProducts_CountFailure(t *testing.T) {
	store := new(MockProductStore)
	svc := NewProductService(store)

	store.On("CountAll", mock.Anything).Return(int64(0), apperror.Store(errors.New("no reachable servers"))).Once()

	_, err := svc.SeedSampleProducts(context.Background())
	assert.Equal(t, apperror.KindStore, apperror.KindOf(err))
	store.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestSeedSampleProducts_Twice(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMockProductRepository()
	svc := NewProductService(repo)

	n, err := svc.SeedSampleProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.SeedSampleProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	products, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	names := []string{products[0].Name, products[1].Name, products[2].Name}
	assert.Equal(t, []string{"Nike Jacket", "Smartphone", "Running Shoes"}, names)
	assert.Equal(t, SampleProducts()[2].Variants, products[2].Variants)
}

func TestProductService_CreateRejectsBeforeStore(t *testing.T) {
	store := new(MockProductStore)
	svc := NewProductService(store)

	_, err := svc.Create(context.Background(), ProductInput{Name: "Broken", Price: ptr(-5.0), Category: "Misc"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	store.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestProductService_CreateStoresValidatedProduct(t *testing.T) {
	store := new(MockProductStore)
	svc := NewProductService(store)

	want := model.Product{Name: "Cap", Price: 15, Category: "Apparel", Variants: []model.Variant{}}
	stored := want
	stored.ID = primitive.NewObjectID()
	store.On("InsertOne", mock.Anything, want).Return(&stored, nil).Once()

	got, err := svc.Create(context.Background(), ProductInput{Name: "Cap", Price: ptr(15.0), Category: "Apparel"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	store.AssertExpectations(t)
}

func TestProductService_DeletePassesIDThrough(t *testing.T) {
	store := new(MockProductStore)
	svc := NewProductService(store)

	store.On("DeleteByID", mock.Anything, "abc").Return(nil, apperror.NotFound("Product not found")).Once()

	_, err := svc.Delete(context.Background(), "abc")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	store.AssertExpectations(t)
}

type pingerFunc func(ctx context.Context, rp *readpref.ReadPref) error

func (f pingerFunc) Ping(ctx context.Context, rp *readpref.ReadPref) error { return f(ctx, rp) }

func TestHealthService_Check(t *testing.T) {
	up := NewHealthService(pingerFunc(func(context.Context, *readpref.ReadPref) error { return nil }))
	assert.True(t, up.Check(context.Background()).Healthy())

	down := NewHealthService(pingerFunc(func(context.Context, *readpref.ReadPref) error {
		return errors.New("server selection timeout")
	}))
	status := down.Check(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, StatusDown, status.Mongo)
}
