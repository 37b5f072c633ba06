package quota_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguachat/backend/internal/prefs"
	"linguachat/backend/internal/quota"
)

// fixedClock returns a clock pinned to the given day that tests can advance.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func newController(t *testing.T, clock *fixedClock) (*quota.Controller, *prefs.MemoryStore) {
	t.Helper()
	store := prefs.NewMemoryStore()
	ctrl := quota.NewController(store, 4, "default-key", quota.WithClock(clock.now))
	return ctrl, store
}

func TestController_CheckLimit_FreshDay(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	status := ctrl.CheckLimit()
	assert.True(t, status.CanUse)
	assert.Equal(t, 4, status.Remaining)
}

func TestController_CheckLimit_IsIdempotent(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	ctrl.RecordUse()
	for i := 0; i < 10; i++ {
		status := ctrl.CheckLimit()
		assert.Equal(t, 3, status.Remaining, "CheckLimit must never change remaining")
	}
}

func TestController_LazyResetAcrossDays(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	ctrl.RecordUse()
	ctrl.RecordUse()
	ctrl.RecordUse()
	assert.Equal(t, 1, ctrl.CheckLimit().Remaining)

	// First check on the next calendar day must read as a fresh counter.
	clock.t = clock.t.Add(24 * time.Hour)
	status := ctrl.CheckLimit()
	assert.True(t, status.CanUse)
	assert.Equal(t, 4, status.Remaining)
}

func TestController_LimitReached(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	for i := 0; i < 4; i++ {
		require.True(t, ctrl.CheckLimit().CanUse)
		ctrl.RecordUse()
	}

	status := ctrl.CheckLimit()
	assert.False(t, status.CanUse)
	assert.Equal(t, 0, status.Remaining)

	// A fifth increment is tolerated but must not restore the allowance.
	ctrl.RecordUse()
	status = ctrl.CheckLimit()
	assert.False(t, status.CanUse)
	assert.Equal(t, 0, status.Remaining)
}

func TestController_SetCredentialResetsUsage(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	for i := 0; i < 4; i++ {
		ctrl.RecordUse()
	}
	require.False(t, ctrl.CheckLimit().CanUse)

	require.NoError(t, ctrl.SetCredential("new-key"))

	status := ctrl.CheckLimit()
	assert.True(t, status.CanUse)
	assert.Equal(t, 4, status.Remaining)
	assert.Equal(t, "new-key", ctrl.Credential())
}

func TestController_Credential_DefaultFallback(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	assert.Equal(t, "default-key", ctrl.Credential())
}

func TestController_CorruptCountReadsAsZero(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, store := newController(t, clock)

	ctrl.RecordUse()
	require.NoError(t, store.Set(prefs.KeyUsageCount, "not-a-number"))

	status := ctrl.CheckLimit()
	assert.Equal(t, 4, status.Remaining)
}

func TestController_State(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	ctrl, _ := newController(t, clock)

	for i := 0; i < 5; i++ {
		ctrl.RecordUse()
	}

	// The raw count is not clamped at the limit.
	state := ctrl.State()
	assert.Equal(t, 5, state.Count)
	assert.Equal(t, "2025-03-10", state.ResetDate)
	assert.Equal(t, 4, state.Limit)

	clock.t = clock.t.Add(24 * time.Hour)
	state = ctrl.State()
	assert.Equal(t, 0, state.Count)
	assert.Equal(t, "2025-03-11", state.ResetDate)
}
