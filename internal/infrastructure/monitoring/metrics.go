package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type CacheMetrics struct {
	Lookups *prometheus.CounterVec
}

type ScheduleMetrics struct {
	ComputationsTotal   *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	InvalidProducts     prometheus.Gauge
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_schedule_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_schedule_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_schedule_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Cache = CacheMetrics{
		Lookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_schedule_product_cache_lookups_total",
				Help: "Product cache lookups by result (hit, miss, error).",
			},
			[]string{"result"},
		),
	}

	Schedule = ScheduleMetrics{
		ComputationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_schedule_computations_total",
				Help: "Total number of schedule computations by interest method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		ComputationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_schedule_computation_duration_seconds",
				Help:    "Histogram of schedule computation latencies, catalog lookup included.",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"method"},
		),
		InvalidProducts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loan_schedule_invalid_products",
				Help: "Number of catalog products failing validation at the last audit.",
			},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCacheLookup(result string) {
	Cache.Lookups.WithLabelValues(result).Inc()
}

func RecordScheduleComputation(method, outcome string, duration time.Duration) {
	Schedule.ComputationsTotal.WithLabelValues(method, outcome).Inc()
	Schedule.ComputationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func SetInvalidProducts(n int) {
	Schedule.InvalidProducts.Set(float64(n))
}
