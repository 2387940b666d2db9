package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SlogExporter writes finished spans to a slog logger at debug level.
type SlogExporter struct {
	logger *slog.Logger
}

func NewSlogExporter(logger *slog.Logger) *SlogExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogExporter{logger: logger}
}

func (e *SlogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []any{
			"span", s.Name(),
			"duration", s.EndTime().Sub(s.StartTime()),
		}
		if s.Parent().IsValid() {
			attrs = append(attrs, "parent", s.Parent().SpanID().String())
		}
		if st := s.Status(); st.Code == codes.Error {
			attrs = append(attrs, "err", st.Description)
		}
		e.logger.DebugContext(ctx, "Span finished.", attrs...)
	}
	return nil
}

func (e *SlogExporter) Shutdown(context.Context) error {
	return nil
}

// NewDebugProvider returns a tracer provider that logs every span through
// logger as soon as it ends.
func NewDebugProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(NewSlogExporter(logger)),
	)
}
