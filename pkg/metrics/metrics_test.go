package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sahabhq/console/internal/common/config"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(config.MetricsConfig{Namespace: "console_test"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/tenants", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tenants", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// record a few domain metrics
	m.UpstreamStart("companies")
	m.UpstreamDone("companies", http.MethodGet, http.StatusOK, time.Now())
	m.LoginResult("ok")
	m.ExportBuilt("revenue")
	m.BackupRun("completed")
	m.SessionOpened()
	m.SessionClosed()

	// scrape endpoint exposes the counters
	sw := httptest.NewRecorder()
	m.Handler().ServeHTTP(sw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, sw.Code)
	body := sw.Body.String()
	assert.Contains(t, body, "console_test_http_requests_total")
	assert.Contains(t, body, "console_test_upstream_requests_total")
	assert.Contains(t, body, "console_test_report_exports_total")
}
