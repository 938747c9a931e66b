package handler

import "github.com/shopstack/marketplace-api/internal/core/ports"

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

type updateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

// listProductsQuery binds the pagination, filter, and sort query parameters.
type listProductsQuery struct {
	Page      int      `query:"page"`
	Limit     int      `query:"limit"`
	Name      string   `query:"name"`
	Category  string   `query:"category"`
	MinPrice  *float64 `query:"minPrice"`
	MaxPrice  *float64 `query:"maxPrice"`
	InStock   bool     `query:"inStock"`
	SortBy    string   `query:"sortBy"`
	SortOrder string   `query:"sortOrder"`
}

func (q listProductsQuery) toFilter() ports.ListProductsFilter {
	return ports.ListProductsFilter{
		Name:      q.Name,
		Category:  q.Category,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		InStock:   q.InStock,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	}
}
