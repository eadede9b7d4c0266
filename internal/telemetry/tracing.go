package telemetry

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const instrumentationName = "github.com/vvakame/bookshelf"

// Setup installs a global tracer provider exporting to the OTLP collector at endpoint.
// If endpoint is empty, no telemetry is configured.
func Setup(ctx context.Context, endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

var _ interface {
	graphql.HandlerExtension
	graphql.ResponseInterceptor
	graphql.FieldInterceptor
} = (*Tracer)(nil)

// Tracer is a gqlgen extension opening a span per operation and per resolver call.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer using tp, or the global provider when tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(instrumentationName)}
}

func (t *Tracer) ExtensionName() string {
	return "Tracer"
}

func (t *Tracer) Validate(schema graphql.ExecutableSchema) error {
	return nil
}

func (t *Tracer) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	ctx, span := t.tracer.Start(ctx, "graphql.operation")
	defer span.End()

	if graphql.HasOperationContext(ctx) {
		oc := graphql.GetOperationContext(ctx)
		span.SetAttributes(attribute.String("graphql.operation.name", operationName(ctx)))
		if oc.Operation != nil {
			span.SetAttributes(attribute.String("graphql.operation.type", string(oc.Operation.Operation)))
		}
	}

	resp := next(ctx)
	if resp != nil && len(resp.Errors) != 0 {
		span.SetAttributes(attribute.Int("graphql.error_count", len(resp.Errors)))
		span.SetStatus(codes.Error, resp.Errors[0].Message)
	}

	return resp
}

func (t *Tracer) InterceptField(ctx context.Context, next graphql.Resolver) (interface{}, error) {
	fc := graphql.GetFieldContext(ctx)
	if fc == nil || !fc.IsResolver {
		return next(ctx)
	}

	ctx, span := t.tracer.Start(ctx, fc.Object+"."+fc.Field.Name)
	defer span.End()
	span.SetAttributes(
		attribute.String("graphql.field.path", fc.Path().String()),
	)

	res, err := next(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return res, err
}
