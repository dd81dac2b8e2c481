package httpapi

import "context"

// daemonCtx is canceled when the daemon begins shutting down, so in-flight
// recommendation and profile requests stop promptly instead of riding out
// their full upstream timeouts. Background until SetBaseContext is called.
var daemonCtx = context.Background()

// SetBaseContext installs the daemon's shutdown context. A nil ctx restores
// the Background default.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		daemonCtx = context.Background()
		return
	}
	daemonCtx = ctx
}

// joinContexts derives a context that ends as soon as either parent does.
// Callers must invoke the cancel func so the watcher goroutine exits.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
		case <-b.Done():
		case <-ctx.Done():
		}
		cancel()
	}()
	return ctx, cancel
}
