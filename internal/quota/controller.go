// Package quota implements the daily usage allowance: a counter in the
// preference store that lazily resets at calendar-day rollover.
package quota

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"linguachat/backend/internal/model"
	"linguachat/backend/internal/prefs"
)

// DefaultDailyLimit is the allowance used when no limit is configured.
const DefaultDailyLimit = 4

const dateLayout = "2006-01-02"

// Status is the result of a limit check.
type Status struct {
	CanUse    bool `json:"can_use"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// Controller is the only mutator of the usage slots in the preference store.
// The lazy-reset invariant: whenever the stored reset date differs from
// today, the count is treated as 0 and the date is advanced, before any read
// or write. The controller never decrements the counter.
type Controller struct {
	mu         sync.Mutex
	store      prefs.Store
	limit      int
	defaultKey string
	now        func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock. Tests use this to cross day boundaries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController builds a Controller over the given store. defaultKey is the
// built-in fallback credential returned when none has been stored.
func NewController(store prefs.Store, limit int, defaultKey string, opts ...Option) *Controller {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	c := &Controller{
		store:      store,
		limit:      limit,
		defaultKey: defaultKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the raw bookkeeping after the lazy reset: the count as
// stored (over-limit values are not clamped) and today's reset date.
func (c *Controller) State() model.UsageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.UsageState{
		Count:     c.currentCount(),
		ResetDate: c.now().Format(dateLayout),
		Limit:     c.limit,
	}
}

// CheckLimit applies the lazy reset and reports the remaining allowance.
// It never changes the count other than through the reset.
func (c *Controller) CheckLimit() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.currentCount()
	remaining := c.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Status{CanUse: remaining > 0, Remaining: remaining, Limit: c.limit}
}

// RecordUse increments the counter by one and stamps today's date. It does
// not check the limit: callers must gate with CheckLimit first. An over-limit
// increment is tolerated and simply keeps CanUse false.
func (c *Controller) RecordUse() {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.currentCount() + 1
	c.writeUsage(count)
}

// SetCredential replaces the stored credential and unconditionally resets the
// counter. A new credential is assumed to carry its own fresh provider quota,
// so the local counter must not block it.
func (c *Controller) SetCredential(newValue string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Set(prefs.KeyCredential, newValue); err != nil {
		return fmt.Errorf("could not store credential: %w", err)
	}
	c.writeUsage(0)
	return nil
}

// Credential returns the stored credential, or the built-in default when
// none has ever been stored.
func (c *Controller) Credential() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := c.store.Get(prefs.KeyCredential)
	if err != nil || value == "" {
		return c.defaultKey
	}
	return value
}

// currentCount reads the counter, applying the lazy reset first. Callers must
// hold c.mu.
func (c *Controller) currentCount() int {
	today := c.now().Format(dateLayout)

	storedDate, err := c.store.Get(prefs.KeyResetDate)
	if err != nil && !errors.Is(err, prefs.ErrNotFound) {
		slog.Warn("Could not read usage reset date, assuming fresh day.", "error", err)
	}
	if storedDate != today {
		// Day rollover (or first ever use): reset before reading.
		c.writeUsage(0)
		return 0
	}

	raw, err := c.store.Get(prefs.KeyUsageCount)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			slog.Warn("Could not read usage count, assuming zero.", "error", err)
		}
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// writeUsage persists the counter and stamps today. Callers must hold c.mu.
func (c *Controller) writeUsage(count int) {
	if err := c.store.Set(prefs.KeyUsageCount, strconv.Itoa(count)); err != nil {
		slog.Warn("Could not persist usage count.", "error", err)
	}
	if err := c.store.Set(prefs.KeyResetDate, c.now().Format(dateLayout)); err != nil {
		slog.Warn("Could not persist usage reset date.", "error", err)
	}
}
