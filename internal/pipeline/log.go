package pipeline

import "sync/atomic"

// Logf is the signature of the non-throwing diagnostic side channel.
// Failures inside the pipeline are reported here and nowhere else; the
// caller-facing contract stays "empty result, never an error".
type Logf func(format string, args ...any)

var logger atomic.Value

// SetLogger installs the diagnostic sink. The default discards.
// The CLI points this at stderr; the library stays silent.
func SetLogger(fn Logf) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	logger.Store(fn)
}

func init() {
	SetLogger(nil)
}

func warnf(format string, args ...any) {
	logger.Load().(Logf)(format, args...)
}

// Warnf reports a diagnostic through the installed sink. It exists for
// sibling packages that share the pipeline's non-throwing contract.
func Warnf(format string, args ...any) {
	warnf(format, args...)
}
