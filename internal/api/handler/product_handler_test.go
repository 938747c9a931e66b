package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/marketplace-api/internal/api/middleware"
	"github.com/shopstack/marketplace-api/internal/core/domain"
	"github.com/shopstack/marketplace-api/internal/core/ports"
)

type stubProductService struct {
	createFn func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	listFn   func(ctx context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) ListProducts(ctx context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error) {
	return s.listFn(ctx, filter)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func newProductContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProductHandler_Create_UsesAuthenticatedOwner(t *testing.T) {
	stub := &stubProductService{
		createFn: func(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			if in.OwnerID != "u1" {
				t.Fatalf("owner id not taken from context: %q", in.OwnerID)
			}
			if in.Name != "Smartphone" || in.Price != 399.99 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Product{ID: "p1", Name: in.Name, Price: in.Price, UserID: in.OwnerID}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodPost, "/products",
		`{"name":"Smartphone","price":399.99,"category":"electronics","stock":3}`)
	c.Set(middleware.CtxUserID, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "p1" || resp.UserID != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Create_RejectsInvalidPayload(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	for _, body := range []string{
		`{"price":10}`,
		`{"name":"Widget","price":0}`,
		`{"name":"Widget","price":-5}`,
		`{"name":"Widget","price":10,"stock":-1}`,
	} {
		c, _ := newProductContext(t, http.MethodPost, "/products", body)
		c.Set(middleware.CtxUserID, "u1")

		err := h.Create(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestProductHandler_Create_MissingClaims(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	c, _ := newProductContext(t, http.MethodPost, "/products", `{"name":"Widget","price":10}`)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProductHandler_List_BindsQueryParameters(t *testing.T) {
	minPrice := 10.5
	stub := &stubProductService{
		listFn: func(_ context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error) {
			if filter.Page != 2 || filter.Limit != 20 {
				t.Fatalf("pagination not bound: %+v", filter)
			}
			if filter.Name != "phone" || filter.Category != "electronics" {
				t.Fatalf("filters not bound: %+v", filter)
			}
			if filter.MinPrice == nil || *filter.MinPrice != minPrice || filter.MaxPrice != nil {
				t.Fatalf("price bounds not bound: %+v", filter)
			}
			if !filter.InStock || filter.SortBy != "price" || filter.SortOrder != "desc" {
				t.Fatalf("sort/stock not bound: %+v", filter)
			}
			return &ports.ProductPage{
				TotalProducts: 25,
				TotalPages:    2,
				CurrentPage:   2,
				Products:      []*domain.Product{{ID: "p1"}},
			}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodGet,
		"/products?page=2&limit=20&name=phone&category=electronics&minPrice=10.5&inStock=true&sortBy=price&sortOrder=desc", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ports.ProductPage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalProducts != 25 || resp.TotalPages != 2 || resp.CurrentPage != 2 || len(resp.Products) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Get_PropagatesNotFound(t *testing.T) {
	stub := &stubProductService{
		getFn: func(_ context.Context, id string) (*domain.Product, error) {
			if id != "missing" {
				t.Fatalf("unexpected id: %q", id)
			}
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	c, _ := newProductContext(t, http.MethodGet, "/products/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Update_Success(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(_ context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
			if id != "p1" || in.Name != "Gadget" || in.Price != 7 {
				t.Fatalf("unexpected args: %s %+v", id, in)
			}
			return &domain.Product{ID: id, Name: in.Name, Price: in.Price}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodPatch, "/products/p1", `{"name":"Gadget","price":7}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Delete_Success(t *testing.T) {
	var deleted string
	stub := &stubProductService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodDelete, "/products/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "p1" {
		t.Fatalf("service saw id %q", deleted)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Product deleted" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
