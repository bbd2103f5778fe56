package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_Independent(t *testing.T) {
	// separate registries must not collide on registration
	a := NewMetrics("dccbooking")
	b := NewMetrics("dccbooking")

	a.BookingsCreated.WithLabelValues("create").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.BookingsCreated.WithLabelValues("create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BookingsCreated.WithLabelValues("create")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics("dccbooking")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/validationStatus", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validationStatus", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/validationStatus", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
