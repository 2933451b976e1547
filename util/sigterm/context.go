package sigterm

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// CancelContext returns a copy of ctx that is canceled when the process
// receives SIGTERM or SIGINT, so in-flight external commands are killed
// rather than orphaned.
func CancelContext(ctx context.Context) context.Context {
	ctxWithCancel, cancel := context.WithCancel(ctx)

	term := make(chan os.Signal, 1)
	signal.Notify(term, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer cancel()
		defer signal.Stop(term)

		select {
		case <-term:
		case <-ctx.Done():
		}
	}()

	return ctxWithCancel
}
