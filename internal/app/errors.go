package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted            = errors.New("service not started")
	ErrQueueFull             = errors.New("screening queue is full")
	ErrNoCandidates          = errors.New("no candidates supplied")
	ErrTooManyCandidates     = errors.New("too many candidates")
	ErrMissingJobDescription = errors.New("role or job description required")
)
