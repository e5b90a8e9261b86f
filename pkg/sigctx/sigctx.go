package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns a context that is done on the first interrupt,
// termination or quit signal.
func NotifyContext() (context.Context, context.CancelFunc) {
	return WithParent(context.Background())
}

func WithParent(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
}
