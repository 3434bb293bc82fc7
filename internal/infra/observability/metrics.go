package observability

import (
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	scoringErrors   *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	scores          prometheus.Histogram
	sessionsActive  prometheus.GaugeFunc
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
// sessionCount feeds the active-sessions gauge; pass nil when no session
// store exists (tests).
func NewMetrics(sessionCount func() int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	if sessionCount == nil {
		sessionCount = func() int { return 0 }
	}

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "altscore_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		scoringErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "altscore_scoring_errors_total",
				Help: "Total errors from the scoring service.",
			},
			[]string{"kind"},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "altscore_submissions_total",
				Help: "Total profile submissions processed.",
			},
			[]string{"status"},
		),
		scores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "altscore_credit_score",
				Help:    "Distribution of returned credit scores.",
				Buckets: prometheus.LinearBuckets(300, 60, 11), // 300..900
			},
		),
		sessionsActive: factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "altscore_sessions_active",
				Help: "Live sessions in the store.",
			},
			func() float64 { return float64(sessionCount()) },
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrScoringError increments the scoring error counter.
func (m *Metrics) IncrScoringError(kind string) {
	m.scoringErrors.WithLabelValues(kind).Inc()
}

// IncrSubmission increments the submission counter with a status label.
func (m *Metrics) IncrSubmission(status string) {
	m.submissions.WithLabelValues(status).Inc()
}

// ObserveScore records a returned credit score.
func (m *Metrics) ObserveScore(score float64) {
	m.scores.Observe(score)
}

// ScoringSnapshot returns a snapshot of scoring metrics suitable for the
// GET /v1/metrics/scoring endpoint.
func (m *Metrics) ScoringSnapshot(activeSessions int) *domain.ScoringMetrics {
	success := getCounterValue(m.submissions, "success")
	failed := getCounterValue(m.submissions, "error")
	total := success + failed

	errorRate := float64(0)
	if total > 0 {
		errorRate = failed / total
	}

	avgScore := float64(0)
	if sum, count := getHistogramSumCount(m.scores); count > 0 {
		avgScore = sum / float64(count)
	}

	return &domain.ScoringMetrics{
		TotalSubmissions: int64(total),
		ErrorRate:        errorRate,
		AvgScore:         avgScore,
		ActiveSessions:   int64(activeSessions),
		Period:           "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

// getHistogramSumCount reads the cumulative sum and sample count of a histogram.
func getHistogramSumCount(h prometheus.Histogram) (float64, uint64) {
	m := &dto.Metric{}
	if err := h.(prometheus.Metric).Write(m); err != nil {
		return 0, 0
	}
	if m.Histogram == nil {
		return 0, 0
	}
	sum := float64(0)
	if m.Histogram.SampleSum != nil {
		sum = *m.Histogram.SampleSum
	}
	count := uint64(0)
	if m.Histogram.SampleCount != nil {
		count = *m.Histogram.SampleCount
	}
	return sum, count
}
