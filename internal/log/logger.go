package log

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// New returns a logger writing to stderr.
// Its V levels follow the process wide verbosity, see SetVerbosity.
func New() logr.Logger {
	return stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags))
}

// SetVerbosity shows messages logged with V(n) when n <= v, for every logger
// returned by New. It is process wide and belongs to the binary's startup.
// The previous value is returned.
func SetVerbosity(v int) int {
	return stdr.SetVerbosity(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Middleware puts logger into the context of every request and logs each
// completed request at V(1).
func Middleware(logger logr.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLogger := logger.WithValues("method", r.Method, "path", r.URL.Path)
		r = r.WithContext(WithLogger(r.Context(), reqLogger))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		reqLogger.V(1).Info("served request", "status", rec.status, "elapsed", time.Since(start))
	})
}
