package database

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemStats keeps counters in process memory; they reset on restart
type MemStats struct {
	mux    sync.RWMutex
	counts map[string]*atomic.Int64
	closed atomic.Bool
}

// NewMemStats returns an empty in-memory Recorder
func NewMemStats() *MemStats {
	m := &MemStats{counts: make(map[string]*atomic.Int64, len(Buckets))}
	for _, b := range Buckets {
		m.counts[b] = new(atomic.Int64)
	}
	return m
}

func (m *MemStats) Record(ctx context.Context, bucket string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.mux.RLock()
	c, ok := m.counts[bucket]
	m.mux.RUnlock()
	if !ok {
		m.mux.Lock()
		if c, ok = m.counts[bucket]; !ok {
			c = new(atomic.Int64)
			m.counts[bucket] = c
		}
		m.mux.Unlock()
	}
	c.Add(1)
	return nil
}

func (m *MemStats) Counts(ctx context.Context) (map[string]int64, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	m.mux.RLock()
	defer m.mux.RUnlock()
	out := make(map[string]int64, len(m.counts))
	for b, c := range m.counts {
		out[b] = c.Load()
	}
	return out, nil
}

func (m *MemStats) Close() error {
	m.closed.Store(true)
	return nil
}
