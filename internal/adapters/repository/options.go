package repository

import "time"

// PoolOption applies a configuration option to the TreapPool.
type PoolOption func(*TreapPool)

// WithMaxLimit caps the number of rows a TopN call may return.
func WithMaxLimit(n int) PoolOption {
	return func(p *TreapPool) {
		if n > 0 {
			p.maxLimit = n
		}
	}
}

// ResultsOption applies a configuration option to the MemoryResults store.
type ResultsOption func(*MemoryResults)

// WithClock overrides the time source used for completion timestamps.
func WithClock(now func() time.Time) ResultsOption {
	return func(s *MemoryResults) {
		if now != nil {
			s.now = now
		}
	}
}
