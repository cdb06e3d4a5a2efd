package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingOptions customises the tracing middleware. Nil fields fall back to
// the global provider and propagator.
type TracingOptions struct {
	ServiceName    string
	TracerProvider trace.TracerProvider
	Propagators    propagation.TextMapPropagator
}

// Tracing starts a server span per request and extracts incoming trace context.
func Tracing(opts TracingOptions) gin.HandlerFunc {
	options := make([]otelgin.Option, 0, 2)
	if opts.TracerProvider != nil {
		options = append(options, otelgin.WithTracerProvider(opts.TracerProvider))
	}
	if opts.Propagators != nil {
		options = append(options, otelgin.WithPropagators(opts.Propagators))
	}

	service := opts.ServiceName
	if service == "" {
		service = "auth-service"
	}

	return otelgin.Middleware(service, options...)
}
