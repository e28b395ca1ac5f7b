package logger

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	internalhttp "github.com/wolfeidau/valuesim/internal/http"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Setup returns the process logger. Dev mode logs at debug level to a
// console writer with stack traces.
func Setup(dev bool) zerolog.Logger {
	var logger zerolog.Logger
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Caller().Logger()

	if dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Stack().Logger()
	}

	return logger
}

// StatusRecorder captures the status code and size written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
	Bytes  int
}

func (r *StatusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *StatusRecorder) Write(b []byte) (int, error) {
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.Bytes += n
	return n, err
}

// HTTPRequests returns middleware that attaches a request scoped logger to
// the context, wraps the request in a span and logs the outcome.
// Server errors are logged at error level, client errors at warn.
func HTTPRequests(logger zerolog.Logger) func(http.Handler) http.Handler {
	tracer := otel.Tracer("github.com/wolfeidau/valuesim/internal/logger")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			ctx = logger.With().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("addr", internalhttp.ClientIPFromContext(ctx)).
				Logger().WithContext(ctx)

			rec := &StatusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))
			if rec.Status == 0 {
				rec.Status = http.StatusOK
			}

			span.SetAttributes(attribute.Int("http.status_code", rec.Status))

			var event *zerolog.Event
			switch {
			case rec.Status >= http.StatusInternalServerError:
				span.SetStatus(codes.Error, http.StatusText(rec.Status))
				event = zerolog.Ctx(ctx).Error()
			case rec.Status >= http.StatusBadRequest:
				event = zerolog.Ctx(ctx).Warn()
			default:
				event = zerolog.Ctx(ctx).Info()
			}

			event.
				Int("status", rec.Status).
				Int("bytes", rec.Bytes).
				Dur("duration", time.Since(started)).
				Msg("http request")
		})
	}
}
