package telemetry

import (
	"context"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookshelf"

var _ interface {
	graphql.HandlerExtension
	graphql.ResponseInterceptor
	graphql.FieldInterceptor
} = (*Metrics)(nil)

// Metrics is a gqlgen extension recording operation and resolver metrics.
type Metrics struct {
	operations *prometheus.CounterVec
	errors     *prometheus.CounterVec
	resolvers  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "operations_total",
			Help:      "Number of executed GraphQL operations.",
		}, []string{"operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "errors_total",
			Help:      "Number of errors returned in GraphQL responses.",
		}, []string{"operation"}),
		resolvers: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "resolver_duration_seconds",
			Help:      "Time spent in field resolvers.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"object", "field"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.errors, m.resolvers} {
		err := reg.Register(c)
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) ExtensionName() string {
	return "Metrics"
}

func (m *Metrics) Validate(schema graphql.ExecutableSchema) error {
	return nil
}

func (m *Metrics) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	resp := next(ctx)
	if resp == nil {
		return nil
	}

	name := operationName(ctx)
	m.operations.WithLabelValues(name).Inc()
	if len(resp.Errors) != 0 {
		m.errors.WithLabelValues(name).Add(float64(len(resp.Errors)))
	}

	return resp
}

func (m *Metrics) InterceptField(ctx context.Context, next graphql.Resolver) (interface{}, error) {
	fc := graphql.GetFieldContext(ctx)
	if fc == nil || !fc.IsResolver {
		return next(ctx)
	}

	start := time.Now()
	res, err := next(ctx)
	m.resolvers.WithLabelValues(fc.Object, fc.Field.Name).Observe(time.Since(start).Seconds())

	return res, err
}

func operationName(ctx context.Context) string {
	if !graphql.HasOperationContext(ctx) {
		return ""
	}
	oc := graphql.GetOperationContext(ctx)
	if oc.OperationName != "" {
		return oc.OperationName
	}
	if oc.Operation != nil && oc.Operation.Name != "" {
		return oc.Operation.Name
	}
	return "anonymous"
}
