package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/stretchr/testify/require"
)

// recorder keeps the last label values and the sum of what was added.
type recorder struct {
	labels []string
	value  float64
}

func (r *recorder) With(labelValues ...string) metrics.Counter {
	r.labels = labelValues
	return r
}

func (r *recorder) Add(delta float64) {
	r.value += delta
}

func TestEngineMetricsAddOperation(t *testing.T) {
	total := &recorder{}
	m := NopEngineMetrics()
	m.OperationsTotal = total

	m.AddOperation("cast-vote", nil, time.Millisecond)
	require.Equal(t, []string{"type", "cast-vote", "status", StatusSuccess}, total.labels)

	m.AddOperation("cast-vote", errors.New("findme"), time.Millisecond)
	require.Equal(t, []string{"type", "cast-vote", "status", StatusFailure}, total.labels)
	require.Equal(t, float64(2), total.value)
}

func TestAPIMetricsCountsErrors(t *testing.T) {
	requests := &recorder{}
	failures := &recorder{}
	m := NopAPIMetrics()
	m.RequestsTotal = requests
	m.RequestErrorsTotal = failures

	m.AddRequest("/api/v1/history", "GET", 200, time.Millisecond)
	m.AddRequest("/api/v1/operations", "POST", 400, time.Millisecond)
	require.Equal(t, float64(2), requests.value)
	require.Equal(t, float64(1), failures.value)
	require.Equal(t, []string{"endpoint", "/api/v1/operations", "method", "POST", "status", "400"}, failures.labels)
}
