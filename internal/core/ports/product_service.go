package ports

import (
	"context"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// CreateProductInput carries the fields for a new product. OwnerID is the
// authenticated subject creating it.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
	ImageURL    string
	OwnerID     string
}

// UpdateProductInput carries the replacement fields for an existing product.
type UpdateProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
	ImageURL    string
}

// ProductPage is one page of a filtered, sorted product listing.
type ProductPage struct {
	TotalProducts int64             `json:"total_products"`
	TotalPages    int               `json:"total_pages"`
	CurrentPage   int               `json:"current_page"`
	Products      []*domain.Product `json:"products"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ListProductsFilter) (*ProductPage, error)
	UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
