package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/model"

	v10 "github.com/go-playground/validator/v10"
)

// ProductInput is the client payload for creating a product. Numeric fields
// are pointers so a missing value can be told apart from zero.
type ProductInput struct {
	Name     string         `json:"name" validate:"required"`
	Price    *float64       `json:"price" validate:"required,gte=0"`
	Category string         `json:"category" validate:"required"`
	Variants []VariantInput `json:"variants" validate:"dive"`
}

type VariantInput struct {
	Color string `json:"color" validate:"required"`
	Size  string `json:"size" validate:"required"`
	Stock *int   `json:"stock" validate:"required,gte=0"`
}

var validate = newValidator()

func newValidator() *v10.Validate {
	v := v10.New(v10.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateProduct checks input against the product schema and returns the
// product ready to be stored. It never touches the store.
func ValidateProduct(input ProductInput) (model.Product, error) {
	if err := validate.Struct(input); err != nil {
		return model.Product{}, validationError(err)
	}

	product := model.Product{
		Name:     input.Name,
		Price:    *input.Price,
		Category: input.Category,
		Variants: make([]model.Variant, 0, len(input.Variants)),
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, model.Variant{
			Color: v.Color,
			Size:  v.Size,
			Stock: *v.Stock,
		})
	}
	return product, nil
}

func validationError(err error) *apperror.Error {
	var ve v10.ValidationErrors
	if !errors.As(err, &ve) {
		return apperror.Validation("Product validation failed: " + err.Error())
	}

	details := make([]string, 0, len(ve))
	for _, fe := range ve {
		details = append(details, fieldPath(fe)+": "+ruleMessage(fe))
	}
	return apperror.Validation("Product validation failed: " + strings.Join(details, ", "))
}

// fieldPath drops the root struct name: "ProductInput.variants[0].stock"
// becomes "variants[0].stock".
func fieldPath(fe v10.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe v10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
