package dispatcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event represents one command line invocation.
type Event struct {
	Command   string
	Args      []string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger is the logging the dispatcher needs. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
	usage  string
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Usage attaches a one-line usage string shown by Commands.
func Usage(text string) Option {
	return func(c *config) {
		c.usage = text
	}
}

// Command describes a registered command.
type Command struct {
	Name  string
	Usage string
}

// Dispatcher routes events to registered handlers. Handlers run on the
// caller's goroutine and return before Dispatch does.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	usage    map[string]string
	logger   Logger

	// OTEL metrics
	processed metric.Int64Counter
	failed    metric.Int64Counter
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		usage:    make(map[string]string),
		logger:   logger,
	}

	// Get meter from global OTel provider (returns no-op if not configured)
	m := meter()

	var err error

	d.processed, err = m.Int64Counter(
		"dispatcher.events.processed",
		metric.WithDescription("Total events processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.failed, err = m.Int64Counter(
		"dispatcher.events.failed",
		metric.WithDescription("Total events whose handler returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given command with optional configuration.
func (d *Dispatcher) Register(command string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := d.withMetrics(command, h)

	if cfg.logged {
		handler = d.withLogging(command, handler)
	}

	d.handlers[command] = handler
	d.usage[command] = cfg.usage
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	h, ok := d.handlers[e.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", e.Command)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the command.
func (d *Dispatcher) HasHandler(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Commands lists registered commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.handlers))
	for name := range d.handlers {
		out = append(out, Command{Name: name, Usage: d.usage[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (d *Dispatcher) withMetrics(command string, h HandlerFunc) HandlerFunc {
	cmdAttr := metric.WithAttributes(attribute.String("command", command))

	return func(e Event) (any, error) {
		result, err := h(e)
		d.processed.Add(context.Background(), 1, cmdAttr)
		if err != nil {
			d.failed.Add(context.Background(), 1, cmdAttr)
		}
		return result, err
	}
}

func (d *Dispatcher) withLogging(command string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling event", "command", command, "args", len(e.Args))

		result, err := h(e)

		if err != nil {
			d.logger.Error("event failed", "command", command, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "command", command, "duration", time.Since(start))
		}

		return result, err
	}
}
