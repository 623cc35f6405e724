package metrics

import (
	"net/http"
	"strconv"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cremacao"

// Prometheus records business and HTTP metrics on its own registry.
//
// Safe for concurrent use.
type Prometheus struct {
	registry *prometheus.Registry

	transitionsApplied  *prometheus.CounterVec
	transitionsRejected *prometheus.CounterVec
	scheduledPromoted   prometheus.Counter
	notificationsSent   *prometheus.CounterVec
	stockLevel          *prometheus.GaugeVec
	httpDuration        *prometheus.HistogramVec
}

var _ interfaces.IMetrics = (*Prometheus)(nil)

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	p := &Prometheus{
		registry: registry,
		transitionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_applied_total",
			Help:      "Removal operations applied, by operation and resulting status.",
		}, []string{"operation", "status"}),
		transitionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Removal operations rejected, by operation and reason.",
		}, []string{"operation", "reason"}),
		scheduledPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_promoted_total",
			Help:      "Scheduled removals promoted to solicitada by the sweep.",
		}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications dispatched, by channel and result.",
		}, []string{"channel", "result"}),
		stockLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stock_quantity",
			Help:      "Current quantity of each stock item. Negative values are allowed.",
		}, []string{"item"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	registry.MustRegister(
		p.transitionsApplied,
		p.transitionsRejected,
		p.scheduledPromoted,
		p.notificationsSent,
		p.stockLevel,
		p.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) TransitionApplied(op entities.Operation, to entities.RemovalStatus) {
	p.transitionsApplied.WithLabelValues(string(op), string(to)).Inc()
}

func (p *Prometheus) TransitionRejected(op entities.Operation, reason string) {
	p.transitionsRejected.WithLabelValues(string(op), reason).Inc()
}

func (p *Prometheus) ScheduledPromoted(n int) {
	if n > 0 {
		p.scheduledPromoted.Add(float64(n))
	}
}

func (p *Prometheus) NotificationSent(channel string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	p.notificationsSent.WithLabelValues(channel, result).Inc()
}

func (p *Prometheus) StockLevel(name string, quantity int) {
	p.stockLevel.WithLabelValues(name).Set(float64(quantity))
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// GinMiddleware observes request latency labelled by the matched route template, so
// /removals/:id is one series regardless of the id.
func (p *Prometheus) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		p.httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
