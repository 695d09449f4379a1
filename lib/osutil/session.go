package osutil

import (
	"context"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that lives until Ctrl+C is pressed or
// SIGTERM is received, cancel releases the signal handler.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// DetachedContext keeps the values of ctx but is never cancelled, for
// cleanup that must still run once ctx is done.
func DetachedContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
