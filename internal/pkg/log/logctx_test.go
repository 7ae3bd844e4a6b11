package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому не используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

// From устойчив к значению не того типа и к *slog.Logger(nil).
func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

func TestWith_EnrichesChildOnly(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	parent := Into(context.Background(), base)

	child, l := With(parent, "request_id", "r-1")
	require.Equal(t, l, From(child))
	require.Equal(t, base, From(parent))

	From(child).Info("refresh_failed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "refresh_failed", rec["msg"])
	require.Equal(t, "r-1", rec["request_id"])
}

func TestNew_ByEnv(t *testing.T) {
	var buf bytes.Buffer

	New(EnvLocal, &buf).Debug("local_debug")
	require.True(t, strings.Contains(buf.String(), "msg=local_debug"))

	buf.Reset()
	New(EnvDev, &buf).Debug("dev_debug")
	require.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	New(EnvProd, &buf).Debug("hidden")
	require.Empty(t, buf.String())
}
