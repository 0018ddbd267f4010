package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CustomersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_created_total",
		Help: "Total number of customers created",
	})

	ReadingsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meter_readings_recorded_total",
		Help: "Total number of meter readings recorded",
	})

	BillsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bills_issued_total",
		Help: "Total number of bills issued",
	})

	BillsOverdueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bills_overdue_total",
		Help: "Total number of bills flagged overdue by the sweep",
	})

	PaymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Total number of payments recorded",
	}, []string{"method", "status"})

	PaymentsDuplicateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_duplicate_total",
		Help: "Total number of payments rejected as duplicate transaction refs",
	})

	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlements_total",
		Help: "Total number of settlement cascades applied",
	})

	SettlementsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlements_failed_total",
		Help: "Total number of settlement cascade failures",
	}, []string{"step"})

	SettlementLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_latency_seconds",
		Help:    "Latency of the settlement cascade",
		Buckets: prometheus.DefBuckets,
	})

	ComplaintsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "complaints_opened_total",
		Help: "Total number of complaints opened",
	})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of notifications dispatched by the billing worker",
	}, []string{"event_type"})

	ReadingCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reading_cache_lookups_total",
		Help: "Latest-reading cache lookups by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
