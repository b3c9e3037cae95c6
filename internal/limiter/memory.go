package limiter

import (
	"context"
	"encoding/hex"
	"sync"
	"time"
)

type memEntry struct {
	fails        int
	windowStart  time.Time
	blockedUntil time.Time
}

// Memory is a process-local limiter used when Redis is unavailable.
type Memory struct {
	mu        sync.Mutex
	policy    Policy
	now       func() time.Time
	entries   map[string]*memEntry
	lastSweep time.Time
}

// NewMemory constructs an in-process limiter.
func NewMemory(p Policy) *Memory {
	return &Memory{policy: p, now: time.Now, entries: map[string]*memEntry{}}
}

func memKey(username string, ipHash []byte) string {
	return username + ":" + hex.EncodeToString(ipHash)
}

func (e *memEntry) expired(now time.Time, window time.Duration) bool {
	return now.Sub(e.windowStart) > window && !e.blockedUntil.After(now)
}

// sweep drops entries whose window and block have both lapsed. It runs at most
// once per window. Callers hold l.mu.
func (l *Memory) sweep(now time.Time) {
	every := l.policy.Window
	if every <= 0 {
		every = time.Minute
	}
	if now.Sub(l.lastSweep) < every {
		return
	}
	l.lastSweep = now
	for k, e := range l.entries {
		if e.expired(now, l.policy.Window) {
			delete(l.entries, k)
		}
	}
}

func (l *Memory) Allow(_ context.Context, username string, ipHash []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[memKey(username, ipHash)]
	if !ok {
		return true, 0, nil
	}
	if now := l.now(); e.blockedUntil.After(now) {
		return false, e.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

func (l *Memory) Success(_ context.Context, username string, ipHash []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, memKey(username, ipHash))
	return nil
}

func (l *Memory) Failure(_ context.Context, username string, ipHash []byte) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	k := memKey(username, ipHash)
	e, ok := l.entries[k]
	if !ok || now.Sub(e.windowStart) > l.policy.Window {
		e = &memEntry{windowStart: now}
		l.entries[k] = e
	}
	e.fails++
	if e.fails >= l.policy.MaxFailures {
		e.fails = 0
		e.windowStart = now
		e.blockedUntil = now.Add(l.policy.BlockFor)
		return true, l.policy.BlockFor, nil
	}
	return false, 0, nil
}
