package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `storefront_http_requests_total{handler="/items/:id",status="200"} 1`) {
		t.Fatalf("request not counted by route template:\n%s", body)
	}
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	// Two instances must be registrable side by side; a shared default
	// registry would panic on the second MustRegister.
	a := New()
	b := New()
	if a == nil || b == nil {
		t.Fatal("expected two independent instances")
	}
}
