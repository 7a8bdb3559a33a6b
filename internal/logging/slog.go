package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// InstrumentationName names the OTel logger scope.
const InstrumentationName = "campaignctl"

// SlogManager owns the process logger and the OTel log provider behind it.
type SlogManager struct {
	logger      *slog.Logger
	logProvider *sdklog.LoggerProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel accepts slog level names in any case. Anything else is INFO.
func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// utcTime renders the record time as UTC RFC3339.
func utcTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
	}
	return a
}

// Setup routes records to w as text, or to stderr when w is nil, so stdout
// is left to command results. With a provider, records also go to the OTel
// bridge under InstrumentationName.
func (m *SlogManager) Setup(w io.Writer, level string, provider *sdklog.LoggerProvider) {
	if w == nil {
		w = os.Stderr
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: utcTime,
	})

	var bridge slog.Handler
	if provider != nil {
		bridge = otelslog.NewHandler(InstrumentationName, otelslog.WithLoggerProvider(provider))
	}

	m.logProvider = provider
	m.logger = slog.New(newFanout(text, bridge))
	m.logger.Debug("Logging initialized", "level", level, "otel", provider != nil)
}

// Logger returns the configured logger, or slog.Default before Setup.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// WriteLog records a command-level message at the named level. Unknown
// levels log at INFO. It does nothing before Setup.
func (m *SlogManager) WriteLog(functionName, data, level string) {
	if m.logger == nil {
		return
	}
	m.logger.Log(context.Background(), parseLevel(level), data, "function", functionName)
}
