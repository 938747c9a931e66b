package ports

import (
	"context"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
type ListProductsFilter struct {
	Name      string   // optional: case-insensitive substring match on name
	Category  string   // optional: case-insensitive substring match on category
	MinPrice  *float64 // optional: price >= MinPrice
	MaxPrice  *float64 // optional: price <= MaxPrice
	InStock   bool     // optional: stock > 0
	SortBy    string   // sort field, defaults to created_at
	SortOrder string   // "asc" (default) or "desc"
	Page      int      // 1-based
	Limit     int      // rows per page (capped at 100 by the service)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Delete removes a product and returns the deleted document so the
	// caller can detach owner back-references.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}
