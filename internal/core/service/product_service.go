package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/marketplace-api/internal/core/domain"
	"github.com/shopstack/marketplace-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// sortFields maps accepted sortBy values to stored field names. Anything
// else falls back to created_at.
var sortFields = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"category":   "category",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductService implements catalog CRUD and listing.
type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, users: users, log: log}
}

// CreateProduct persists a new product owned by the authenticated subject and
// appends its id to the owner's product back-references. The back-reference
// write is non-fatal: the product is the source of truth for ownership.
func (s *ProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price == 0 {
		return nil, domain.NewValidationError("Name and price are required")
	}

	now := time.Now().UTC()
	created, err := s.products.Create(ctx, &domain.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		UserID:      in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if in.OwnerID != "" {
		if err := s.users.AttachProduct(ctx, in.OwnerID, created.ID); err != nil {
			s.log.Warn().Err(err).Str("product_id", created.ID).Msg("failed to attach product to owner")
		}
	}

	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.NewValidationError("Invalid or missing ID")
	}
	return s.products.FindByID(ctx, id)
}

// ListProducts normalizes pagination and sorting, then returns one page plus
// totals. Listing is read-only: identical filters with no intervening writes
// yield identical pages.
func (s *ProductService) ListProducts(ctx context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if mapped, ok := sortFields[filter.SortBy]; ok {
		filter.SortBy = mapped
	} else {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder != "desc" {
		filter.SortOrder = "asc"
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ProductPage{
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   filter.Page,
		Products:      products,
	}, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price == 0 {
		return nil, domain.NewValidationError("Name and price are required for update")
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Description = in.Description
	product.Category = in.Category
	product.Stock = in.Stock
	product.ImageURL = in.ImageURL
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// DeleteProduct removes the product and detaches it from its owner's
// back-references when an owner is recorded.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}

	if deleted.UserID != "" {
		if err := s.users.DetachProduct(ctx, deleted.UserID, id); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("failed to detach product from owner")
		}
	}

	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
