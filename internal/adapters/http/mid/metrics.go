package mid

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsPath is excluded from request counting.
const MetricsPath = "/metrics"

// Metrics holds the Prometheus collectors of the HTTP layer.
type Metrics struct {
	requestCount *prometheus.CounterVec
	pageRenders  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "xgserver",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		pageRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "xgserver",
				Name:      "page_renders_total",
				Help:      "Total number of rendered pages by page name.",
			},
			[]string{"page"},
		),
	}
	for _, c := range []prometheus.Collector{m.requestCount, m.pageRenders} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler counts requests by method, route pattern and status.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == MetricsPath {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// route pattern (e.g. /pages/{pageName}) keeps label cardinality bounded
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestCount.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
	})
}

// PageRendered counts a successful render of page.
func (m *Metrics) PageRendered(page string) {
	m.pageRenders.WithLabelValues(page).Inc()
}
