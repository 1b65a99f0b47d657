package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// FromContext returns the logger attached to ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithDocument derives a logger that tags every entry with the document
// path and attaches it to the returned context, so that the render pass
// below a runner worker logs against the file it is working on.
func WithDocument(ctx context.Context, path string) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(FieldPath, path)
	return WithLogger(ctx, logger), logger
}
