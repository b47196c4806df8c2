package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const (
	OutcomeCommit   = "commit"
	OutcomeRollback = "rollback"
	OutcomeTimeout  = "timeout"
	OutcomePanic    = "panic"
)

var (
	unitsOfWork = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supplychain",
		Name:      "unit_of_work_total",
		Help:      "Units of work by name and outcome.",
	}, []string{"name", "outcome"})

	unitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "supplychain",
		Name:      "unit_of_work_duration_seconds",
		Help:      "Wall time of a unit of work from begin to commit or rollback.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"name"})

	statusMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supplychain",
		Name:      "status_messages_total",
		Help:      "Delivery status messages by result (ok, retry, dlq).",
	}, []string{"result"})

	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supplychain",
		Name:      "events_published_total",
		Help:      "Domain events handed to the broker by type and result.",
	}, []string{"type", "result"})
)

func ObserveUnitOfWork(name, outcome string, took time.Duration) {
	unitsOfWork.WithLabelValues(name, outcome).Inc()
	unitDuration.WithLabelValues(name).Observe(took.Seconds())
}

func StatusMessage(result string) {
	statusMessages.WithLabelValues(result).Inc()
}

func EventPublished(typ string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	eventsPublished.WithLabelValues(typ, result).Inc()
}

// UnitsOfWork reads the current counter value; tests use it to assert outcomes.
func UnitsOfWork(name, outcome string) float64 {
	return counterValue(unitsOfWork.WithLabelValues(name, outcome))
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
