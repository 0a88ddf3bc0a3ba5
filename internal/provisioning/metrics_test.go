package provisioning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAttempt(t *testing.T) {
	t.Parallel()
	m := NewMetrics("digitalocean")

	m.RecordAttempt("resolve_address", errors.New("not yet"))
	m.RecordAttempt("resolve_address", errors.New("not yet"))
	m.RecordAttempt("resolve_address", nil)

	failed, err := m.attempts.GetMetricWithLabelValues("digitalocean", "resolve_address", "error")
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(failed))

	ok, err := m.attempts.GetMetricWithLabelValues("digitalocean", "resolve_address", "success")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(ok))
}

func TestMetrics_RecordRun(t *testing.T) {
	t.Parallel()
	m := NewMetrics("hetzner")

	m.RecordRun(true, time.Unix(1700000000, 0))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.runSuccess.WithLabelValues("hetzner")))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(m.runTimestamp.WithLabelValues("hetzner")))

	m.RecordRun(false, time.Unix(1700000100, 0))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.runSuccess.WithLabelValues("hetzner")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()
	m := NewMetrics("mock")
	m.RecordRun(true, time.Unix(1, 0))
	m.ObserveStage(StageCreating, 2*time.Second)

	path := filepath.Join(t.TempDir(), "dropvpn.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dropvpn_run_success{provider="mock"} 1`)
	assert.Contains(t, string(data), `dropvpn_provisioning_stage_duration_seconds_count{provider="mock",stage="creating"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics

	m.RecordAttempt("x", nil)
	m.RecordRun(true, time.Now())
	m.ObserveStage(StageCreating, time.Second)
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile("/nonexistent/path"))
}
