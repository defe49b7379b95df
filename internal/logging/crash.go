package logging

import (
	"context"
	"runtime"
	"runtime/debug"
)

// LogPanic logs a recovered panic with its stack and re-panics. Use it as
// `defer logging.LogPanic(ctx)` at the top of main and worker goroutines.
func LogPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	FromContext(ctx).Error().
		Interface("panic", r).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Bytes("stack", debug.Stack()).
		Msg("panic")
	panic(r)
}
