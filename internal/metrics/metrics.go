// Package metrics holds the Prometheus collectors for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a set of collectors registered on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	BillsWritten      *prometheus.CounterVec
	BillAmount        prometheus.Counter
	PaymentsRecorded  *prometheus.CounterVec
	OrdersPlaced      prometheus.Counter
	CommissionsClosed prometheus.Counter
	CacheLookups      *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "milkagency",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		BillsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "bills_written_total",
			Help:      "Bills created, updated or deleted.",
		}, []string{"action"}),
		BillAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "bill_amount_rupees_total",
			Help:      "Sum of totals of created bills.",
		}),
		PaymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "payments_recorded_total",
			Help:      "Customer payments recorded by method.",
		}, []string{"method"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "orders_placed_total",
			Help:      "Portal orders placed.",
		}),
		CommissionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "commissions_computed_total",
			Help:      "Monthly commission records written.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "milkagency",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by name and result.",
		}, []string{"cache", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.BillsWritten,
		m.BillAmount,
		m.PaymentsRecorded,
		m.OrdersPlaced,
		m.CommissionsClosed,
		m.CacheLookups,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
