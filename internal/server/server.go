// Package server exposes an executable schema over HTTP.
package server

import (
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vvakame/bookshelf/internal/log"
	"github.com/vvakame/bookshelf/internal/telemetry"
)

type config struct {
	logger        logr.Logger
	introspection bool
	playground    bool
	gatherer      prometheus.Gatherer
	registerer    prometheus.Registerer
	tracer        *telemetry.Tracer
}

type Option func(cfg *config)

func WithLogger(logger logr.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func WithIntrospection(enabled bool) Option {
	return func(cfg *config) {
		cfg.introspection = enabled
	}
}

func WithPlayground(enabled bool) Option {
	return func(cfg *config) {
		cfg.playground = enabled
	}
}

// WithRegistry makes the server register its collectors on reg and serve reg on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(cfg *config) {
		cfg.gatherer = reg
		cfg.registerer = reg
	}
}

func WithTracer(tracer *telemetry.Tracer) Option {
	return func(cfg *config) {
		cfg.tracer = tracer
	}
}

// New returns a handler serving
//
//	/query    GraphQL over GET and POST
//	/         the playground, when enabled
//	/healthz  liveness
//	/metrics  prometheus metrics
func New(es graphql.ExecutableSchema, opts ...Option) (http.Handler, error) {
	cfg := &config{
		logger:        logr.Discard(),
		introspection: true,
		playground:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registerer == nil {
		reg := prometheus.NewRegistry()
		cfg.gatherer = reg
		cfg.registerer = reg
	}
	if cfg.tracer == nil {
		cfg.tracer = telemetry.NewTracer(nil)
	}

	metrics, err := telemetry.NewMetrics(cfg.registerer)
	if err != nil {
		return nil, err
	}

	srv := handler.New(es)
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	if cfg.introspection {
		srv.Use(extension.Introspection{})
	}
	srv.Use(metrics)
	srv.Use(cfg.tracer)

	mux := http.NewServeMux()
	mux.Handle("/query", srv)
	if cfg.playground {
		mux.Handle("/", playground.Handler("bookshelf", "/query"))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))

	return log.Middleware(cfg.logger, mux), nil
}
