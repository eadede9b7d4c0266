package log

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Nil(t, logger.GetSink())

	var lines []string
	want := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	ctx := WithLogger(context.Background(), want)
	FromContext(ctx).Info("hello")
	assert.Len(t, lines, 1)
}

func TestMiddleware(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	var sawLogger bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := logr.FromContext(r.Context())
		sawLogger = err == nil
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	Middleware(logger, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.True(t, sawLogger)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"path"="/healthz"`)
	assert.Contains(t, lines[0], `"status"=418`)
}

func TestSetVerbosity(t *testing.T) {
	prev := SetVerbosity(2)
	defer SetVerbosity(prev)

	logger := New()
	assert.True(t, logger.V(2).Enabled())
	assert.False(t, logger.V(3).Enabled())

	// New leaves the process wide verbosity alone
	New()
	assert.Equal(t, 2, SetVerbosity(2))
}
