package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/carousel/pkg/log"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  slog.Level
		err   bool
	}{
		"error":   {input: "error", want: slog.LevelError},
		"warn":    {input: "WARN", want: slog.LevelWarn},
		"warning": {input: "warning", want: slog.LevelWarn},
		"info":    {input: " info ", want: slog.LevelInfo},
		"debug":   {input: "debug", want: slog.LevelDebug},
		"unknown": {input: "trace", err: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.GetLevel(tc.input)
			if tc.err {
				require.ErrorIs(t, err, log.ErrUnknownLogLevel)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level  string
		format string
		want   string
		err    error
	}{
		"json": {
			level:  "info",
			format: "json",
			want:   `"msg":"hello"`,
		},
		"logfmt": {
			level:  "debug",
			format: "logfmt",
			want:   "msg=hello",
		},
		"text": {
			level:  "info",
			format: "text",
			want:   "hello",
		},
		"bad level": {
			level:  "loud",
			format: "json",
			err:    log.ErrUnknownLogLevel,
		},
		"bad format": {
			level:  "info",
			format: "xml",
			err:    log.ErrUnknownLogFormat,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.CreateHandlerWithStrings(&buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)

			logger := slog.New(h)
			logger.Info("hello", slog.Int("index", 3))
			logger.Debug("hidden at info")

			assert.Contains(t, buf.String(), tc.want)
			if tc.level == "info" {
				assert.NotContains(t, buf.String(), "hidden at info")
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), log.WithContext(t.Context()))

	custom := slog.New(slog.DiscardHandler)
	assert.Same(t, custom, log.WithContext(log.NewContext(t.Context(), custom)))

	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	assert.NotSame(t, slog.Default(), log.WithContext(ctx), "trace ID is attached")
}
