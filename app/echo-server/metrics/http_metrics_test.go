package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/v1/users/:visitor_id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("visitor_id"))
	})

	for _, target := range []string{"/api/v1/users/u1", "/api/v1/users/u2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(RequestTotal.WithLabelValues("/api/v1/users/:visitor_id", http.MethodGet, "200")))
}
