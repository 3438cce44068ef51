// Package tracing configures OpenTelemetry for compile tracing.
package tracing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted in Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

const defaultServiceName = "irscope"

// Config configures tracing.
type Config struct {
	// Enabled false yields a no-op tracer.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `yaml:"exporter" mapstructure:"exporter"`

	// FilePath is the JSONL output of the "file" exporter.
	FilePath string `yaml:"file_path" mapstructure:"file_path"`

	OTLPEndpoint string `yaml:"otlp_endpoint" mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept, in (0, 1].
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`

	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// DefaultConfig returns tracing disabled with the file exporter selected.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     ExporterFile,
		OTLPEndpoint: "localhost:4317",
		SampleRate:   1.0,
		ServiceName:  defaultServiceName,
	}
}

// ValidExporter reports whether name is a known exporter.
func ValidExporter(name string) bool {
	switch name {
	case "", ExporterNone, ExporterFile, ExporterStdout, ExporterOTLP:
		return true
	}
	return false
}

// Provider wraps the tracer provider of one irscope session.
type Provider struct {
	provider  *sdktrace.TracerProvider
	tracer    trace.Tracer
	enabled   bool
	sessionID string
}

// NewProvider builds a provider from cfg. Every span carries the session ID
// as a resource attribute.
func NewProvider(cfg Config) (*Provider, error) {
	sessionID := uuid.NewString()

	if !cfg.Enabled {
		return &Provider{
			tracer:    noop.NewTracerProvider().Tracer("noop"),
			sessionID: sessionID,
		}, nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String(AttrSessionID, sessionID),
	)

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider:  provider,
		tracer:    provider.Tracer(serviceName),
		enabled:   true,
		sessionID: sessionID,
	}, nil
}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file_path required for file exporter")
		}
		exp, err := NewFileExporter(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
		return exp, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exp, nil
	case ExporterOTLP:
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exp, err := otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exp, nil
	case ExporterNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
}

// Tracer returns the session tracer. It is a no-op tracer when disabled.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool { return p.enabled }

// SessionID returns the random ID of this session.
func (p *Provider) SessionID() string { return p.sessionID }

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
