package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestFileExporter_WritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"existing":true}`+"\n"), 0600))

	exp, err := NewFileExporter(path)
	require.NoError(t, err)

	start := time.Now()
	stub := tracetest.SpanStub{
		Name:       SpanCompile,
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Status:     sdktrace.Status{Code: codes.Error, Description: "unexpected token"},
		Attributes: []attribute.KeyValue{attribute.Int(AttrTokenCount, 5)},
	}
	require.NoError(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)

	var rec SpanRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	require.Equal(t, SpanCompile, rec.Name)
	require.Equal(t, "ERROR", rec.Status)
	require.Equal(t, "unexpected token", rec.StatusMsg)
	require.InDelta(t, 1.5, rec.DurationMs, 1e-9)
	require.EqualValues(t, 5, rec.Attributes[AttrTokenCount])
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exp, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exp.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	require.Error(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
}
