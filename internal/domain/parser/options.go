package parser

import "time"

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the clock used to resolve open-ended date ranges such as
// "2019 - present".
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}
