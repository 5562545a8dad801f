package fathom

import (
	"time"

	"github.com/fathomtext/fathom/internal/aggregate"
)

// Option customizes one ExtractContext call.
type Option func(*aggregate.Options)

// WithSource labels the response's meta block. The default is "text".
func WithSource(source string) Option {
	return func(o *aggregate.Options) { o.Source = source }
}

// WithClock fixes the reference clock used for the meta timestamp and for
// classifying date expressions as past, present, or future. Use it when
// output must be reproducible.
func WithClock(now func() time.Time) Option {
	return func(o *aggregate.Options) { o.Now = now }
}

func buildOptions(opts []Option) aggregate.Options {
	var o aggregate.Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
