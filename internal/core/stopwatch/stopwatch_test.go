package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/testutil"
)

func TestStopwatch_NotStarted(t *testing.T) {
	watch := New(testutil.NewMockClock())

	assert.False(t, watch.IsStarted())
	assert.False(t, watch.IsRunning())
	assert.Zero(t, watch.Elapsed())
	assert.Zero(t, watch.SplitElapsed())
	assert.True(t, watch.StartedAt().IsZero())
}

func TestStopwatch_NilClockUsesRealClock(t *testing.T) {
	watch := New(nil)
	require.NoError(t, watch.Start())

	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, watch.Elapsed(), 5*time.Millisecond)
}

func TestStopwatch_StartElapsed(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)

	require.NoError(t, watch.Start())
	assert.Equal(t, clock.Now(), watch.StartedAt())

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, watch.Elapsed())
	assert.Equal(t, int64(1500), watch.Elapsed().Milliseconds())
	assert.Equal(t, int64(1_500_000_000), watch.Elapsed().Nanoseconds())
}

func TestStopwatch_StartTwice(t *testing.T) {
	watch := New(testutil.NewMockClock())
	require.NoError(t, watch.Start())

	err := watch.Start()
	assert.ErrorIs(t, err, ErrInvalidTimerState)
}

func TestStopwatch_StartAfterStopRequiresReset(t *testing.T) {
	watch := New(testutil.NewMockClock())
	require.NoError(t, watch.Start())
	require.NoError(t, watch.Stop())

	assert.ErrorIs(t, watch.Start(), ErrInvalidTimerState)

	watch.Reset()
	assert.NoError(t, watch.Start())
}

func TestStopwatch_StopFreezesElapsed(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)
	require.NoError(t, watch.Start())

	clock.Advance(time.Minute)
	require.NoError(t, watch.Stop())
	clock.Advance(time.Hour)

	assert.False(t, watch.IsRunning())
	assert.True(t, watch.IsStarted())
	assert.Equal(t, time.Minute, watch.Elapsed())
}

func TestStopwatch_StopWhenNotRunning(t *testing.T) {
	watch := New(testutil.NewMockClock())
	assert.ErrorIs(t, watch.Stop(), ErrInvalidTimerState)

	require.NoError(t, watch.Start())
	require.NoError(t, watch.Stop())
	assert.ErrorIs(t, watch.Stop(), ErrInvalidTimerState)
}

func TestStopwatch_Reset(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)
	require.NoError(t, watch.Start())
	require.NoError(t, watch.Split())
	clock.Advance(time.Minute)

	watch.Reset()

	assert.False(t, watch.IsStarted())
	assert.False(t, watch.IsRunning())
	assert.False(t, watch.IsSplit())
	assert.Zero(t, watch.Elapsed())
	assert.True(t, watch.StartedAt().IsZero())
}

func TestStopwatch_SplitMeasuresSubInterval(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)
	require.NoError(t, watch.Start())

	clock.Advance(25 * time.Minute)
	require.NoError(t, watch.Split())
	assert.True(t, watch.IsSplit())

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, watch.SplitElapsed())
	assert.Equal(t, 30*time.Minute, watch.Elapsed())
}

func TestStopwatch_SplitElapsedWithoutSplit(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)
	require.NoError(t, watch.Start())

	clock.Advance(3 * time.Minute)
	assert.Equal(t, 3*time.Minute, watch.SplitElapsed())
}

func TestStopwatch_UnsplitKeepsTotal(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)
	require.NoError(t, watch.Start())
	clock.Advance(10 * time.Minute)
	require.NoError(t, watch.Split())
	clock.Advance(2 * time.Minute)

	watch.Unsplit()

	assert.False(t, watch.IsSplit())
	assert.Equal(t, 12*time.Minute, watch.Elapsed())
	assert.Equal(t, 12*time.Minute, watch.SplitElapsed())
}

func TestStopwatch_UnsplitWithoutSplit(t *testing.T) {
	watch := New(testutil.NewMockClock())
	require.NoError(t, watch.Start())

	assert.NotPanics(t, watch.Unsplit)
	assert.False(t, watch.IsSplit())
}

func TestStopwatch_SplitWhenNotRunning(t *testing.T) {
	watch := New(testutil.NewMockClock())
	assert.ErrorIs(t, watch.Split(), ErrInvalidTimerState)

	require.NoError(t, watch.Start())
	require.NoError(t, watch.Stop())
	assert.ErrorIs(t, watch.Split(), ErrInvalidTimerState)
}

func TestStopwatch_SplitElapsedAfterStop(t *testing.T) {
	clock := testutil.NewMockClock()
	watch := New(clock)
	require.NoError(t, watch.Start())
	clock.Advance(time.Minute)
	require.NoError(t, watch.Split())
	clock.Advance(2 * time.Minute)
	require.NoError(t, watch.Stop())
	clock.Advance(time.Hour)

	assert.Equal(t, 2*time.Minute, watch.SplitElapsed())
	assert.Equal(t, 3*time.Minute, watch.Elapsed())
}
