package service

import (
	"testing"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateProduct_Valid(t *testing.T) {
	input := ProductInput{
		Name:     "Nike Jacket",
		Price:    ptr(200.0),
		Category: "Apparel",
		Variants: []VariantInput{
			{Color: "Black", Size: "M", Stock: ptr(10)},
			{Color: "Black", Size: "M", Stock: ptr(0)},
		},
	}

	product, err := ValidateProduct(input)
	require.NoError(t, err)
	assert.Equal(t, model.Product{
		Name:     "Nike Jacket",
		Price:    200,
		Category: "Apparel",
		Variants: []model.Variant{
			{Color: "Black", Size: "M", Stock: 10},
			{Color: "Black", Size: "M", Stock: 0},
		},
	}, product)
	assert.True(t, product.ID.IsZero())
}

func TestValidateProduct_ZeroPriceAndNoVariants(t *testing.T) {
	product, err := ValidateProduct(ProductInput{Name: "Freebie", Price: ptr(0.0), Category: "Promo"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, product.Price)
	assert.NotNil(t, product.Variants)
	assert.Empty(t, product.Variants)
}

func TestValidateProduct_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   ProductInput
		message string
	}{
		{
			name:    "empty payload",
			input:   ProductInput{},
			message: "Product validation failed: name: is required, price: is required, category: is required",
		},
		{
			name:    "negative price",
			input:   ProductInput{Name: "Broken", Price: ptr(-5.0), Category: "Misc"},
			message: "Product validation failed: price: must be greater than or equal to 0",
		},
		{
			name: "negative variant stock",
			input: ProductInput{Name: "Shoes", Price: ptr(1.0), Category: "Footwear", Variants: []VariantInput{
				{Color: "Red", Size: "9", Stock: ptr(1)},
				{Color: "Blue", Size: "10", Stock: ptr(-1)},
			}},
			message: "Product validation failed: variants[1].stock: must be greater than or equal to 0",
		},
		{
			name: "variant missing fields",
			input: ProductInput{Name: "Shoes", Price: ptr(1.0), Category: "Footwear", Variants: []VariantInput{
				{Size: "9"},
			}},
			message: "Product validation failed: variants[0].color: is required, variants[0].stock: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateProduct(tt.input)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.EqualError(t, err, tt.message)
		})
	}
}
