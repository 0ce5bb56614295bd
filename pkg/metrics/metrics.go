package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sahabhq/console/internal/common/config"
)

type Metrics struct {
	registry      *prometheus.Registry
	namespace     string
	httpReqCnt    *prometheus.CounterVec
	httpDur       *prometheus.HistogramVec
	httpInfl      *prometheus.GaugeVec
	upstreamCnt   *prometheus.CounterVec
	upstreamDur   *prometheus.HistogramVec
	upstreamInfl  *prometheus.GaugeVec
	loginCnt      *prometheus.CounterVec
	exportCnt     *prometheus.CounterVec
	backupRunCnt  *prometheus.CounterVec
	sessionsGauge prometheus.Gauge
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	// Register standard process and Go collectors
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	// Register basic HTTP metrics
	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: cfg.Buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	// Upstream platform API call metrics
	upstreamCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "upstream_requests_total"}, []string{"resource", "method", "status"})
	upstreamDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "upstream_request_duration_seconds", Buckets: cfg.Buckets}, []string{"resource", "method"})
	upstreamInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "upstream_requests_inflight"}, []string{"resource"})
	r.MustRegister(upstreamCnt, upstreamDur, upstreamInfl)

	loginCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "logins_total"}, []string{"status"})
	exportCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "report_exports_total"}, []string{"kind"})
	backupRunCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "scheduled_backup_runs_total"}, []string{"status"})
	sessionsGauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: ns, Name: "sessions_active"})
	r.MustRegister(loginCnt, exportCnt, backupRunCnt, sessionsGauge)

	return &Metrics{
		registry:      r,
		namespace:     ns,
		httpReqCnt:    httpReqCnt,
		httpDur:       httpDur,
		httpInfl:      httpInfl,
		upstreamCnt:   upstreamCnt,
		upstreamDur:   upstreamDur,
		upstreamInfl:  upstreamInfl,
		loginCnt:      loginCnt,
		exportCnt:     exportCnt,
		backupRunCnt:  backupRunCnt,
		sessionsGauge: sessionsGauge,
	}
}

func (m *Metrics) UpstreamStart(resource string) {
	m.upstreamInfl.WithLabelValues(resource).Inc()
}

func (m *Metrics) UpstreamDone(resource, method string, status int, since time.Time) {
	m.upstreamCnt.WithLabelValues(resource, method, httpStatus(status)).Inc()
	m.upstreamDur.WithLabelValues(resource, method).Observe(time.Since(since).Seconds())
	m.upstreamInfl.WithLabelValues(resource).Dec()
}

func (m *Metrics) LoginResult(status string) {
	m.loginCnt.WithLabelValues(status).Inc()
}

func (m *Metrics) ExportBuilt(kind string) {
	m.exportCnt.WithLabelValues(kind).Inc()
}

func (m *Metrics) BackupRun(status string) {
	m.backupRunCnt.WithLabelValues(status).Inc()
}

func (m *Metrics) SessionOpened() { m.sessionsGauge.Inc() }
func (m *Metrics) SessionClosed() { m.sessionsGauge.Dec() }

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := httpStatus(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func httpStatus(code int) string { return strconv.Itoa(code) }
