package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limit caps a command to MaxUses within Window per user
type Limit struct {
	MaxUses int
	Window  time.Duration
}

// Per-command limits. Commands not listed fall back to defaultLimit.
var commandLimits = map[string]Limit{
	"harvest":     {MaxUses: 10, Window: 60 * time.Second},
	"refinery":    {MaxUses: 5, Window: 30 * time.Second},
	"leaderboard": {MaxUses: 3, Window: 60 * time.Second},
	"split":       {MaxUses: 2, Window: 120 * time.Second},
	"setrate":     {MaxUses: 1, Window: 300 * time.Second},
	"reset":       {MaxUses: 1, Window: 600 * time.Second},
}

var defaultLimit = Limit{MaxUses: 5, Window: 60 * time.Second}

// maxWindow is the longest configured window. A key whose newest use is
// older than this is expired for every command.
var maxWindow = func() time.Duration {
	longest := defaultLimit.Window
	for _, l := range commandLimits {
		if l.Window > longest {
			longest = l.Window
		}
	}
	return longest
}()

// Limiter tracks per-user sliding windows for each command
type Limiter struct {
	mu        sync.Mutex
	history   map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// New creates a limiter using the wall clock
func New() *Limiter {
	return &Limiter{
		history: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// NewWithClock creates a limiter with an injectable clock for tests
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		history: make(map[string][]time.Time),
		now:     now,
	}
}

// Allow records one use of command by userID and reports whether it fits
// inside the command's window. When denied, retryAfter says how long until
// the oldest use falls out of the window.
func (l *Limiter) Allow(userID int64, command string) (allowed bool, retryAfter time.Duration) {
	limit, ok := commandLimits[command]
	if !ok {
		limit = defaultLimit
	}

	key := fmt.Sprintf("%d:%s", userID, command)
	now := l.now()
	cutoff := now.Add(-limit.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Periodically drop keys that expired for every command, so the map
	// stays bounded as users come and go
	if now.Sub(l.lastSweep) >= maxWindow {
		expiredBefore := now.Add(-maxWindow)
		for k, times := range l.history {
			if len(times) == 0 || !times[len(times)-1].After(expiredBefore) {
				delete(l.history, k)
			}
		}
		l.lastSweep = now
	}

	uses := l.history[key]
	kept := uses[:0]
	for _, t := range uses {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= limit.MaxUses {
		l.history[key] = kept
		return false, kept[0].Sub(cutoff)
	}

	l.history[key] = append(kept, now)
	return true, 0
}
