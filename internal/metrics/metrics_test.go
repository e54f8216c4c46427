package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry()

	r := gin.New()
	r.Use(reg.Middleware())
	r.GET("/api/projects/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/api/projects/a", "/api/projects/b", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.requestsTotal.WithLabelValues("GET", "/api/projects/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.requestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveAssignmentEvent(t *testing.T) {
	reg := NewRegistry()
	reg.ObserveAssignmentEvent("created", true)
	reg.ObserveAssignmentEvent("created", false)
	reg.ObserveAssignmentEvent("created", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.assignmentEvents.WithLabelValues("created", "published")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.assignmentEvents.WithLabelValues("created", "failed")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := NewRegistry()
	reg.ObserveAssignmentEvent("deleted", true)

	w := httptest.NewRecorder()
	reg.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MetricAssignmentEventsTotal)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
