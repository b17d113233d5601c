package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRepositoryMetrics(reg)

	m.Observe("list_plots", "ok", 10*time.Millisecond)
	m.Observe("list_plots", "ok", 20*time.Millisecond)
	m.Observe("create_plot", "validation", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues("list_plots", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("create_plot", "validation")))
}

func TestRepositoryMetrics_NilSafe(t *testing.T) {
	var m *RepositoryMetrics
	assert.NotPanics(t, func() { m.Observe("list_plots", "ok", time.Second) })
}

func TestHTTPMetrics_MiddlewareAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/field-plots/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	})
	e.GET("/metrics", Handler(reg))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/field-plots/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/field-plots/:id", "404")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "fieldplot_http_requests_total"))
}
