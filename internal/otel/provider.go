// Package otel builds the OpenTelemetry log and meter providers used by
// campaignctl. Logs reach the slog bridge; store and dispatcher counters
// reach the meter provider once it is installed globally.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds OTel configuration
type Config struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	// Writer receives logs and metrics as JSON. Required unless Endpoint is set.
	LogWriter io.Writer
	Endpoint  string // OTLP/HTTP endpoint, used for logs and metrics when set
	Insecure  bool
}

// Provider owns the log and meter providers for one process run.
type Provider struct {
	logProvider   *sdklog.LoggerProvider
	meterProvider *sdkmetric.MeterProvider
	config        Config
}

// New builds the providers. A disabled config yields a provider whose
// accessors return nil or no-op values.
func New(cfg Config) (*Provider, error) {
	p := &Provider{config: cfg}
	if !cfg.Enabled {
		return p, nil
	}
	if cfg.LogWriter == nil && cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTel enabled but no log writer or endpoint configured")
	}

	ctx := context.Background()
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	logOpts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.LogWriter != nil {
		logExp, err := stdoutlog.New(stdoutlog.WithWriter(cfg.LogWriter), stdoutlog.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create file log exporter: %w", err)
		}
		logOpts = append(logOpts, sdklog.WithProcessor(
			sdklog.NewBatchProcessor(logExp, sdklog.WithExportTimeout(cfg.BatchTimeout)),
		))

		metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.LogWriter), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create file metric exporter: %w", err)
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(periodicReader(metricExp, cfg.BatchTimeout)))
	}

	if cfg.Endpoint != "" {
		logHTTPOpts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		metricHTTPOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			logHTTPOpts = append(logHTTPOpts, otlploghttp.WithInsecure())
			metricHTTPOpts = append(metricHTTPOpts, otlpmetrichttp.WithInsecure())
		}

		logExp, err := otlploghttp.New(ctx, logHTTPOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}
		logOpts = append(logOpts, sdklog.WithProcessor(
			sdklog.NewBatchProcessor(logExp, sdklog.WithExportTimeout(cfg.BatchTimeout)),
		))

		metricExp, err := otlpmetrichttp.New(ctx, metricHTTPOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(periodicReader(metricExp, cfg.BatchTimeout)))
	}

	p.logProvider = sdklog.NewLoggerProvider(logOpts...)
	p.meterProvider = sdkmetric.NewMeterProvider(meterOpts...)
	return p, nil
}

// periodicReader exports on every interval and once more on shutdown, which
// is the export a short CLI run relies on.
func periodicReader(exp sdkmetric.Exporter, timeout time.Duration) sdkmetric.Reader {
	var opts []sdkmetric.PeriodicReaderOption
	if timeout > 0 {
		opts = append(opts, sdkmetric.WithTimeout(timeout))
	}
	return sdkmetric.NewPeriodicReader(exp, opts...)
}

// LoggerProvider returns the log provider for the otelslog bridge, or nil
// when disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logProvider
}

// MeterProvider returns the meter provider to install with
// otel.SetMeterProvider. It is a no-op provider when disabled.
func (p *Provider) MeterProvider() metric.MeterProvider {
	if p.meterProvider == nil {
		return noop.NewMeterProvider()
	}
	return p.meterProvider
}

// Meter returns a named meter from MeterProvider.
func (p *Provider) Meter(name string) metric.Meter {
	return p.MeterProvider().Meter(name)
}

// Flush exports pending logs and metrics.
func (p *Provider) Flush(ctx context.Context) error {
	if !p.config.Enabled {
		return nil
	}
	var errs []error
	if err := p.logProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("log flush failed: %w", err))
	}
	if err := p.meterProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metric flush failed: %w", err))
	}
	return errors.Join(errs...)
}

// Shutdown flushes and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.config.Enabled {
		return nil
	}
	var errs []error
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metric shutdown failed: %w", err))
	}
	if err := p.logProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("log shutdown failed: %w", err))
	}
	return errors.Join(errs...)
}

// Enabled returns whether OTel is enabled
func (p *Provider) Enabled() bool {
	return p.config.Enabled
}
