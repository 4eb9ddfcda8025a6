package httpserver

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestListProductsHandler_ParsesFilters(t *testing.T) {
	svc := &stubCatalogSvc{products: []domain.Product{{ID: "p1", Name: "Mug"}}}
	router := testRouter(Deps{CatalogSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/products?keyword=mug&category=kitchen&minPrice=500&maxPrice=2000&sort=price_low", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	f := svc.lastFilter
	if f.Keyword != "mug" || f.Category != "kitchen" || f.Sort != domain.SortPriceLow {
		t.Fatalf("unexpected filter %+v", f)
	}
	if f.MinPriceCents == nil || *f.MinPriceCents != 500 {
		t.Fatalf("minPrice not parsed: %+v", f.MinPriceCents)
	}
	if f.MaxPriceCents == nil || *f.MaxPriceCents != 2000 {
		t.Fatalf("maxPrice not parsed: %+v", f.MaxPriceCents)
	}
}

func TestListProductsHandler_InvalidPrice(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/products?minPrice=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetProductHandler_NotFound(t *testing.T) {
	svc := &stubCatalogSvc{err: domain.ErrNotFound}
	router := testRouter(Deps{CatalogSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Product not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateProductHandler_RequiresAdmin(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	withAuth(t, req, "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateProductHandler_Multipart(t *testing.T) {
	svc := &stubCatalogSvc{product: &domain.Product{ID: "p1", Name: "Mug"}}
	router := testRouter(Deps{CatalogSvc: svc})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Mug")
	mw.WriteField("description", "Ceramic mug")
	mw.WriteField("category", "kitchen")
	mw.WriteField("price", "1299")
	mw.WriteField("stock", "10")
	part, err := mw.CreateFormFile("images", "mug.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("jpeg bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	withAuth(t, req, "a1", domain.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := svc.lastCreate
	if in.Name != "Mug" || in.PriceCents != 1299 || in.Stock != 10 {
		t.Fatalf("unexpected create input %+v", in)
	}
	if len(in.Files) != 1 || in.Files[0].Filename != "mug.jpg" {
		t.Fatalf("image file not passed: %+v", in.Files)
	}
}

func TestUpdateProductHandler_PartialFields(t *testing.T) {
	svc := &stubCatalogSvc{product: &domain.Product{ID: "p1"}}
	router := testRouter(Deps{CatalogSvc: svc})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("price", "1500")
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/products/p1", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	withAuth(t, req, "a1", domain.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := svc.lastUpdate
	if in.PriceCents == nil || *in.PriceCents != 1500 {
		t.Fatalf("price not parsed: %+v", in)
	}
	if in.Name != nil || in.Stock != nil {
		t.Fatalf("untouched fields should stay nil: %+v", in)
	}
}

func TestDeleteProductHandler_OK(t *testing.T) {
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}})

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	withAuth(t, req, "a1", domain.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "soft delete") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
