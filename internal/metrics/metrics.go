package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "growvest",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by route, method and status code.",
}, []string{"route", "method", "code"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "growvest",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route and method.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method"})

var ProfitRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "growvest",
	Subsystem: "profit",
	Name:      "runs_total",
	Help:      "Daily profit runs by outcome (distributed, already_distributed, failed).",
}, []string{"outcome"})

var ProfitDistributed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "growvest",
	Subsystem: "profit",
	Name:      "distributed_total",
	Help:      "Total profit credited to investments.",
})

var InvestmentsCredited = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "growvest",
	Subsystem: "profit",
	Name:      "last_run_investments_credited",
	Help:      "Investments credited by the most recent distribution.",
})

var Reviews = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "growvest",
	Subsystem: "approval",
	Name:      "reviews_total",
	Help:      "Deposit and withdrawal reviews by entity and outcome.",
}, []string{"entity", "status"})

// Profit run outcomes
const (
	OutcomeDistributed        = "distributed"
	OutcomeAlreadyDistributed = "already_distributed"
	OutcomeFailed             = "failed"
)

// Recorder records business metrics; services depend on it so tests can swap it
type Recorder interface {
	ProfitRun(outcome string, total decimal.Decimal, credited int)
	Review(entity, status string)
}

// PrometheusRecorder records into the package collectors
type PrometheusRecorder struct{}

func (PrometheusRecorder) ProfitRun(outcome string, total decimal.Decimal, credited int) {
	ProfitRuns.WithLabelValues(outcome).Inc()
	if outcome != OutcomeDistributed {
		return
	}
	ProfitDistributed.Add(total.InexactFloat64())
	InvestmentsCredited.Set(float64(credited))
}

func (PrometheusRecorder) Review(entity, status string) {
	Reviews.WithLabelValues(entity, status).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served HTTP request
func ObserveRequest(route, method string, code int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
