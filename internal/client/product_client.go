package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ecommerce-api/internal/model"
)

// APIError is a non-2xx answer from the product API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("product api: %d %s", e.StatusCode, e.Message)
}

// NewProduct is the create payload. Price and Stock are always sent, so a
// zero value is transmitted as 0 rather than omitted.
type NewProduct struct {
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Category string          `json:"category"`
	Variants []model.Variant `json:"variants"`
}

type mutationResponse struct {
	Message string        `json:"message"`
	Product model.Product `json:"product"`
}

type ProductClient struct {
	http *HTTPClient
}

func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{http: NewHTTPClient(baseURL, timeout)}
}

func (c *ProductClient) List(ctx context.Context) ([]model.Product, error) {
	return c.list(ctx, "/products")
}

func (c *ProductClient) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return c.list(ctx, "/products/category/"+url.PathEscape(category))
}

func (c *ProductClient) ListByColor(ctx context.Context, color string) ([]model.Product, error) {
	return c.list(ctx, "/products/by-color/"+url.PathEscape(color))
}

func (c *ProductClient) Create(ctx context.Context, p NewProduct) (*model.Product, error) {
	if p.Variants == nil {
		p.Variants = []model.Variant{}
	}
	resp, err := c.http.Post(ctx, "/products", p)
	if err != nil {
		return nil, err
	}
	return decodeMutation(resp, http.StatusCreated)
}

func (c *ProductClient) Delete(ctx context.Context, id string) (*model.Product, error) {
	resp, err := c.http.Delete(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeMutation(resp, http.StatusOK)
}

func (c *ProductClient) list(ctx context.Context, path string) ([]model.Product, error) {
	resp, err := c.http.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	var products []model.Product
	if err := resp.Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func decodeMutation(resp *Response, want int) (*model.Product, error) {
	if resp.StatusCode != want {
		return nil, apiError(resp)
	}
	var out mutationResponse
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &out.Product, nil
}

func apiError(resp *Response) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(resp.RawBody, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
