package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/dispatcher"
	"github.com/chaoscampaign/tracker/internal/handlers"
	"github.com/chaoscampaign/tracker/internal/logging"
	intOtel "github.com/chaoscampaign/tracker/internal/otel"
	"github.com/chaoscampaign/tracker/internal/parser"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "campaignctl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	sessionStart := time.Now()

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config", ".", "directory containing "+config.FileName)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()

	// load config
	defer viper.Reset()
	configErr := config.Load(*configDir)
	var notFound viper.ConfigFileNotFoundError
	if configErr != nil && !errors.As(configErr, &notFound) {
		fmt.Fprintf(stderr, "campaignctl: %v\n", configErr)
		return 1
	}

	// logs go to a per-session file, or to stderr so stdout stays JSON
	logLevel := viper.GetString("logLevel")
	var logOut io.Writer = stderr
	if logsDir := viper.GetString("logsDir"); logsDir != "" {
		f, err := logging.OpenSessionLog(logsDir, AppName, sessionStart)
		if err != nil {
			fmt.Fprintf(stderr, "campaignctl: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}

	// Initialize OTel provider if enabled
	var otelProvider *intOtel.Provider
	var otelLogProvider *sdklog.LoggerProvider
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		p, err := intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logOut,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			fmt.Fprintf(stderr, "campaignctl: failed to initialize OTel provider: %v\n", err)
		} else {
			otelProvider = p
			otelLogProvider = p.LoggerProvider()
			otel.SetMeterProvider(p.MeterProvider())
		}
	}

	slogManager := logging.NewSlogManager()
	slogManager.Setup(logOut, logLevel, otelLogProvider)
	logger := slogManager.Logger()
	if configErr != nil {
		logger.Warn("Failed to load config, using defaults!", "error", configErr)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := slogManager.Flush(ctx); err != nil {
			fmt.Fprintf(stderr, "campaignctl: failed to flush logs: %v\n", err)
		}
		if otelProvider != nil {
			if err := otelProvider.Shutdown(ctx); err != nil {
				fmt.Fprintf(stderr, "campaignctl: failed to shut down OTel: %v\n", err)
			}
			otel.SetMeterProvider(noop.NewMeterProvider())
		}
	}()

	if len(rest) == 0 || rest[0] == "help" {
		printUsage(stderr)
		if len(rest) == 0 {
			return 2
		}
		return 0
	}

	storageCfg := config.GetStorageConfig()
	dbLogger := logging.NewZerolog(logOut, logLevel, "database")
	backend, err := createStorageBackend(storageCfg, dbLogger)
	if err != nil {
		logger.Error("Failed to create storage backend", "error", err)
		fmt.Fprintf(stderr, "campaignctl: %v\n", err)
		return 1
	}
	if err := backend.Init(); err != nil {
		logger.Error("Failed to initialize storage backend", "error", err)
		fmt.Fprintf(stderr, "campaignctl: %v\n", err)
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("Failed to close storage backend", "error", err)
		}
	}()

	stores, err := openStores(backend, storageCfg.Keys, logger)
	if err != nil {
		logger.Error("Failed to load collections", "error", err)
		fmt.Fprintf(stderr, "campaignctl: %v\n", err)
		return 1
	}

	d, err := dispatcher.New(logger)
	if err != nil {
		fmt.Fprintf(stderr, "campaignctl: %v\n", err)
		return 1
	}
	handlers.NewService(handlers.Dependencies{
		Units:      stores.units,
		Forces:     stores.forces,
		Campaigns:  stores.campaigns,
		Battles:    stores.battles,
		Backend:    backend,
		Parser:     parser.NewParser(logger),
		LogManager: slogManager,
	}).Register(d)

	if !d.HasHandler(rest[0]) {
		fmt.Fprintf(stderr, "campaignctl: unknown command %q\n", rest[0])
		printCommands(stderr, d)
		return 2
	}

	result, err := d.Dispatch(dispatcher.Event{
		Command:   rest[0],
		Args:      rest[1:],
		Timestamp: sessionStart,
	})
	if err != nil {
		fmt.Fprintf(stderr, "campaignctl: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "campaignctl: failed to write result: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "%s %s (built %s)\n\n", AppName, CurrentVersion, BuildDate)
	fmt.Fprintf(w, "usage: %s [-config dir] <command> [args...]\n", AppName)
	fmt.Fprintln(w, "arguments are key=value pairs; lists are comma-separated")
	d, err := dispatcher.New(slog.New(slog.DiscardHandler))
	if err != nil {
		return
	}
	handlers.NewService(handlers.Dependencies{}).Register(d)
	printCommands(w, d)
}

func printCommands(w io.Writer, d *dispatcher.Dispatcher) {
	fmt.Fprintln(w, "\ncommands:")
	for _, c := range d.Commands() {
		fmt.Fprintf(w, "  %s\n", c.Usage)
	}
}
