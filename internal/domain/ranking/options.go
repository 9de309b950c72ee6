package ranking

// Option configures a Ranker.
type Option func(*Ranker)

// WithWorkers bounds the number of candidates scored concurrently.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithObserver registers a callback invoked once per scored candidate.
func WithObserver(fn func(RankedObservation)) Option {
	return func(r *Ranker) {
		if fn != nil {
			r.observe = fn
		}
	}
}
