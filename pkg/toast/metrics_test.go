package toast

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dtesting "github.com/go-drift/toastkit/pkg/testing"
)

func TestMetrics_TrackScheduler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")
	ft := dtesting.NewFrameTesterWithT(t)
	s := NewScheduler(ft.Driver(), WithMetrics(m))

	t0 := s.ShowMessage("0", Infinite)
	s.ShowMessage("1", DefaultTimeout)
	s.ShowMessage("2", DefaultTimeout)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.queued))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.enqueued))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.evicted))

	t0.Close(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.queued))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.shown))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.discarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.closed))

	s.ShowMessage("3", Infinite)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evicted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.shown))
}

func TestMetrics_DisposedQueuedToastLeavesGauge(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "test")
	ft := dtesting.NewFrameTesterWithT(t)
	s := NewScheduler(ft.Driver(), WithMetrics(m), WithQueueMode(Wait))

	s.ShowMessage("0", Infinite)
	t1 := s.ShowMessage("1", DefaultTimeout)
	require.Equal(t, 1.0, testutil.ToFloat64(m.queued))

	t1.Dispose()

	assert.Equal(t, 0.0, testutil.ToFloat64(m.queued))
	assert.Empty(t, s.disposeSubs)
}

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg, "app")

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"app_toasts_active",
		"app_toasts_queued",
		"app_toasts_shown_total",
		"app_toasts_queued_total",
		"app_toasts_evicted_total",
		"app_toasts_discarded_total",
		"app_toasts_closed_total",
	}, names)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.setSizes(1, 2)
		m.incShown()
		m.incQueued()
		m.incEvicted()
		m.incDiscarded()
		m.incClosed()
	})
}
