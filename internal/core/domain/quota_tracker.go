package domain

import "time"

// QuotaTracker is an immutable monthly usage counter for one (tenant, provider)
// pair. Mutating operations return a new tracker; the receiver is never altered.
// RequestsMade may exceed QuotaLimit transiently; over-quota is tolerated and
// simply reported as exhausted.
type QuotaTracker struct {
	requestsMade int
	quotaLimit   int
	year         int
	month        time.Month
	lastResetAt  time.Time
}

// NewQuotaTracker constructs a tracker for the given calendar month.
func NewQuotaTracker(requestsMade, quotaLimit, year int, month time.Month, lastResetAt time.Time) QuotaTracker {
	return QuotaTracker{
		requestsMade: requestsMade,
		quotaLimit:   quotaLimit,
		year:         year,
		month:        month,
		lastResetAt:  lastResetAt,
	}
}

func (t QuotaTracker) RequestsMade() int      { return t.requestsMade }
func (t QuotaTracker) QuotaLimit() int        { return t.quotaLimit }
func (t QuotaTracker) Year() int              { return t.year }
func (t QuotaTracker) Month() time.Month      { return t.month }
func (t QuotaTracker) LastResetAt() time.Time { return t.lastResetAt }

// RemainingQuota is quotaLimit - requestsMade, floored at zero.
func (t QuotaTracker) RemainingQuota() int {
	remaining := t.quotaLimit - t.requestsMade
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExhausted reports whether no quota remains this month.
func (t QuotaTracker) IsExhausted() bool {
	return t.RemainingQuota() == 0
}

// CanMakeRequest is the exact logical inverse of IsExhausted.
func (t QuotaTracker) CanMakeRequest() bool {
	return !t.IsExhausted()
}

// UsagePercentage is requestsMade/quotaLimit*100 rounded to two decimals,
// clamped to [0, 100].
func (t QuotaTracker) UsagePercentage() float64 {
	if t.quotaLimit <= 0 {
		return 0
	}
	pct := float64(t.requestsMade) / float64(t.quotaLimit) * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	// Round half away from zero to 2 decimal places.
	return float64(int64(pct*100+0.5)) / 100
}

// ShouldReset reports whether the tracker belongs to a calendar month other
// than the current one. This is a calendar comparison, not an elapsed-time one.
func (t QuotaTracker) ShouldReset(now time.Time) bool {
	return t.year != now.Year() || t.month != now.Month()
}

// Reset returns a fresh tracker for the current calendar month with the same
// quota limit and zero usage.
func (t QuotaTracker) Reset(now time.Time) QuotaTracker {
	return QuotaTracker{
		requestsMade: 0,
		quotaLimit:   t.quotaLimit,
		year:         now.Year(),
		month:        now.Month(),
		lastResetAt:  now,
	}
}

// IncrementUsage returns a copy of the tracker with requestsMade increased by n.
func (t QuotaTracker) IncrementUsage(n int) QuotaTracker {
	next := t
	next.requestsMade += n
	return next
}
