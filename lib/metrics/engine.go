package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type EngineMetrics struct {
	OperationsTotal          metrics.Counter
	OperationDurationSeconds metrics.Histogram

	Polls metrics.Counter
	Votes metrics.Counter
}

func (m *EngineMetrics) AddOperation(operationType string, err error, elapsed time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}

	m.OperationsTotal.With("type", operationType, "status", status).Add(1)
	m.OperationDurationSeconds.With("type", operationType, "status", status).Observe(elapsed.Seconds())
}

func (m *EngineMetrics) AddPoll() {
	m.Polls.Add(1)
}

func (m *EngineMetrics) AddVote() {
	m.Votes.Add(1)
}

func PromEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		OperationsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: EngineSubsystem,
			Name:      "operations_total",
			Help:      "Total number of executed operations.",
		}, []string{"type", "status"}),
		OperationDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: EngineSubsystem,
			Name:      "operation_duration_seconds",
			Help:      "Time spent to execute and commit an operation.",
		}, []string{"type", "status"}),
		Polls: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: EngineSubsystem,
			Name:      "polls_total",
			Help:      "Total number of created polls.",
		}, []string{}),
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: EngineSubsystem,
			Name:      "votes_total",
			Help:      "Total number of accepted ballots, revotes included.",
		}, []string{}),
	}
}

func NopEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		OperationsTotal:          discard.NewCounter(),
		OperationDurationSeconds: discard.NewHistogram(),
		Polls:                    discard.NewCounter(),
		Votes:                    discard.NewCounter(),
	}
}
