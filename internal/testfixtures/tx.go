package testfixtures

import (
	"context"
	"sync"
	"time"
)

// TxManager runs transactions one at a time against a Store and restores
// the previous state when fn fails
type TxManager struct {
	store *Store
	mu    sync.Mutex

	// Calls counts started transactions
	Calls int
}

// NewTxManager creates a transaction manager bound to store
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// Clock is a controllable time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock fixed at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StaleRecorder collects dates passed to MarkStale
type StaleRecorder struct {
	mu    sync.Mutex
	Dates []time.Time
}

func (r *StaleRecorder) MarkStale(_ context.Context, date time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Dates = append(r.Dates, date)
}

// Count returns how many stale signals were recorded
func (r *StaleRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Dates)
}
