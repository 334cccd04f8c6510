package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingReminders struct {
	mu     sync.Mutex
	sweeps []time.Time
	daily  int
}

func (c *countingReminders) Sweep(_ context.Context, now time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweeps = append(c.sweeps, now)
	return 0, errors.New("db is down")
}

func (c *countingReminders) SweepDaily(context.Context, time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.daily++
	return 1, nil
}

func (c *countingReminders) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sweeps), c.daily
}

func TestScheduler_RunsBothSweepsUntilStopped(t *testing.T) {
	reminders := &countingReminders{}
	s := NewScheduler(reminders, 10*time.Millisecond, zap.NewNop())
	fixed := time.Date(2026, 10, 14, 9, 45, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		sweeps, daily := reminders.counts()
		return sweeps >= 2 && daily >= 2
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	reminders.mu.Lock()
	defer reminders.mu.Unlock()
	assert.Equal(t, fixed, reminders.sweeps[0])
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true, "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger(false, "loud")
	require.Error(t, err)
}
