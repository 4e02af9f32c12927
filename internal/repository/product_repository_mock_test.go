package repository

import (
	"context"
	"errors"
	"testing"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProductRepository_Semantics(t *testing.T) {
	ctx := context.Background()
	repo := NewMockProductRepository(
		model.Product{Name: "A", Category: "Apparel", Variants: []model.Variant{{Color: "Red", Size: "M", Stock: 1}}},
		model.Product{Name: "B", Category: "apparel", Variants: []model.Variant{{Color: "red", Size: "M", Stock: 1}}},
	)

	byCategory, err := repo.FindByCategory(ctx, "Apparel")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "A", byCategory[0].Name)

	byColor, err := repo.FindByVariantColor(ctx, "red")
	require.NoError(t, err)
	require.Len(t, byColor, 1)
	assert.Equal(t, "B", byColor[0].Name)

	_, err = repo.DeleteByID(ctx, "zzz")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	deleted, err := repo.DeleteByID(ctx, byColor[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "B", deleted.Name)

	n, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMockProductRepository_FailWith(t *testing.T) {
	repo := NewMockProductRepository()
	repo.FailWith(errors.New("connection reset"))

	_, err := repo.FindAll(context.Background())
	assert.Equal(t, apperror.KindStore, apperror.KindOf(err))

	repo.FailWith(nil)
	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
