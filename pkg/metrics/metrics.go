package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tma_bot"

// Bot collects the counters of the ordering front-end. A nil *Bot is a no-op.
type Bot struct {
	dispatch        *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	gatewayCalls    *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	catalogItems    *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
}

// New registers the bot collectors on reg.
func New(reg prometheus.Registerer) *Bot {
	if reg == nil {
		return &Bot{}
	}
	m := &Bot{
		dispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_events_total",
			Help:      "Inbound events routed by the dispatcher.",
		}, []string{"kind", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Outbound chat messages by outcome.",
		}, []string{"outcome"}),
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Commerce backend queries by operation and outcome.",
		}, []string{"operation", "outcome"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Latency of commerce backend queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		catalogItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Items loaded into the catalog by source.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(m.dispatch, m.notifications, m.gatewayCalls, m.gatewayDuration, m.catalogItems, m.httpRequests)
	return m
}

func (m *Bot) IncDispatch(kind, outcome string) {
	if m == nil || m.dispatch == nil {
		return
	}
	m.dispatch.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func (m *Bot) IncNotification(outcome string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveGateway records one backend query; a non-nil err counts as a failure.
func (m *Bot) ObserveGateway(operation string, started time.Time, err error) {
	if m == nil || m.gatewayCalls == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	op := normalizeLabel(operation)
	m.gatewayCalls.WithLabelValues(op, outcome).Inc()
	m.gatewayDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Bot) SetCatalogItems(source string, count int) {
	if m == nil || m.catalogItems == nil {
		return
	}
	m.catalogItems.WithLabelValues(normalizeLabel(source)).Set(float64(count))
}

func (m *Bot) IncHTTPRequest(route string, status int) {
	if m == nil || m.httpRequests == nil {
		return
	}
	m.httpRequests.WithLabelValues(normalizeLabel(route), strconv.Itoa(status)).Inc()
}

// Handler exposes the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
