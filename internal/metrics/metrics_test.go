package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/pomodoro"
)

func TestMetricsService_Observe(t *testing.T) {
	m := NewMetricsService()

	m.Observe(pomodoro.Snapshot{
		State:        pomodoro.StateBreaking,
		BreakCount:   2,
		Elapsed:      90 * time.Second,
		SplitElapsed: 30 * time.Second,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.state.WithLabelValues("breaking")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.state.WithLabelValues("concentrating")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakCount))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.elapsedSeconds))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.splitSeconds))
}

func TestMetricsService_RecordTransition(t *testing.T) {
	m := NewMetricsService()

	m.RecordTransition(pomodoro.Transition{From: pomodoro.StateConcentrating, To: pomodoro.StateBreaking})
	m.RecordTransition(pomodoro.Transition{From: pomodoro.StateBreaking, To: pomodoro.StateConcentrating})
	m.RecordTransition(pomodoro.Transition{From: pomodoro.StateConcentrating, To: pomodoro.StateBreaking})
	m.RecordTransition(pomodoro.Transition{From: pomodoro.StateConcentrating, To: pomodoro.StateLongerBreaking})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues("concentrating", "breaking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues("breaking", "concentrating")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breaksTotal.WithLabelValues("short")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.breaksTotal.WithLabelValues("longer")))
}

func TestMetricsService_IndependentRegistries(t *testing.T) {
	first := NewMetricsService()
	second := NewMetricsService()

	first.RecordTransition(pomodoro.Transition{From: pomodoro.StateInitialized, To: pomodoro.StateConcentrating})

	assert.Equal(t, 0.0, testutil.ToFloat64(second.transitionsTotal.WithLabelValues("initialized", "concentrating")))
}

func TestMetricsService_Handler(t *testing.T) {
	m := NewMetricsService()
	m.Observe(pomodoro.Snapshot{State: pomodoro.StateConcentrating})

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `pomodoro_state{state="concentrating"} 1`)
	assert.Contains(t, string(body), "pomodoro_break_counter 0")
}
