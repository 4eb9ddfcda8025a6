package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestAddToCartHandler_OK(t *testing.T) {
	svc := &stubCartSvc{cart: &domain.Cart{ID: "c1", UserID: "u1", Lines: []domain.CartLine{{ProductID: "p1", Quantity: 2}}}}
	router := testRouter(Deps{CartSvc: svc})

	body := `{"productId":"p1","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	withAuth(t, req, "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Product added to cart") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddToCartHandler_InsufficientStock(t *testing.T) {
	svc := &stubCartSvc{err: domain.Invalid("Insufficient stock")}
	router := testRouter(Deps{CartSvc: svc})

	body := `{"productId":"p1","quantity":99}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	withAuth(t, req, "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Insufficient stock") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddToCartHandler_AdminForbidden(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"productId":"p1","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	withAuth(t, req, "a1", domain.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Only users can add to cart") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetCartHandler_OK(t *testing.T) {
	svc := &stubCartSvc{cart: &domain.Cart{ID: "c1", UserID: "u1"}}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	withAuth(t, req, "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRemoveFromCartHandler_OK(t *testing.T) {
	svc := &stubCartSvc{cart: &domain.Cart{ID: "c1", UserID: "u1"}}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/remove/p1", nil)
	withAuth(t, req, "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Product removed from cart") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
