// engine replays a transaction stream against per-client accounts and
// writes a CSV account summary.
//
// Usage:
//
//	engine -input transactions.csv > accounts.csv
//	engine -config configs/engine.yaml
//
// Diagnostics go to stderr; the report goes to stdout unless -output or
// output.path redirects it to a file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmarkov/payment-engine/internal/config"
	"github.com/dmarkov/payment-engine/internal/engine"
	"github.com/dmarkov/payment-engine/internal/metrics"
	"github.com/dmarkov/payment-engine/internal/model"
	"github.com/dmarkov/payment-engine/internal/report"
	"github.com/dmarkov/payment-engine/internal/source"
	"github.com/dmarkov/payment-engine/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	inputPath := flag.String("input", "", "path to input CSV (overrides input.path)")
	outputPath := flag.String("output", "", "path to output CSV (default stdout)")
	shards := flag.Int("shards", 0, "worker shards, 0 = use config")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Positional input path, matching the classic CLI shape:
	// engine transactions.csv
	if *inputPath == "" && flag.NArg() > 0 {
		*inputPath = flag.Arg(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	if *inputPath != "" {
		cfg.Input.Mode = config.ModeCSV
		cfg.Input.Path = *inputPath
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}
	if *shards > 0 {
		cfg.Processing.Shards = *shards
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Structured logging on stderr; stdout carries the report.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	logger = logger.With(
		"instance", cfg.Instance.ID,
		"run_id", uuid.New().String(),
	)
	slog.SetDefault(logger)

	logger.Info("starting payment engine",
		"version", version.Version,
		"commit", version.Commit,
		"mode", cfg.Input.Mode,
		"shards", cfg.Processing.Shards,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file if given, or falls back to defaults
// so the engine runs from flags alone.
func loadConfig(path string) (*config.EngineConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadWithDefaults(path)
}

func run(ctx context.Context, cfg *config.EngineConfig, logger *slog.Logger) error {
	m := metrics.New()

	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, m, logger)
		srv.Start()
		defer func() {
			if err := srv.Stop(context.Background()); err != nil {
				logger.Warn("metrics server shutdown", "error", err)
			}
		}()
	}

	var (
		accounts []*engine.Account
		stats    engine.RegistryStats
		err      error
	)

	switch cfg.Input.Mode {
	case config.ModeCSV:
		accounts, stats, err = runCSV(ctx, cfg, logger, m)
	case config.ModeStream:
		accounts, stats, err = runStream(ctx, cfg, logger, m)
	default:
		return fmt.Errorf("unknown input mode %q", cfg.Input.Mode)
	}
	if err != nil {
		return err
	}

	logger.Info("processing complete",
		"received", stats.Received,
		"applied", stats.Applied,
		"failed", stats.Failed,
		"accounts", len(accounts),
	)

	return writeReport(cfg.Output.Path, accounts)
}

// runCSV processes a CSV file. With one shard the registry is driven
// directly in arrival order; with more, transactions are fanned out by
// client id.
func runCSV(ctx context.Context, cfg *config.EngineConfig, logger *slog.Logger, m *metrics.Metrics) ([]*engine.Account, engine.RegistryStats, error) {
	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return nil, engine.RegistryStats{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src := source.NewCSV(f, logger, source.WithCSVMetrics(m))

	if cfg.Processing.Shards == 1 {
		registry := engine.NewRegistry(logger, engine.WithMetrics(m))
		for {
			tx, err := src.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, engine.RegistryStats{}, fmt.Errorf("read input: %w", err)
			}
			_ = registry.Route(tx)
		}
		return registry.Accounts(), registry.Stats(), nil
	}

	dispatcher := engine.NewDispatcher(cfg.Processing.Shards, cfg.Processing.QueueSize, logger, engine.WithMetrics(m))

	txs := make(chan model.Transaction, cfg.Processing.QueueSize)
	feedErr := make(chan error, 1)
	go func() {
		defer close(txs)
		feedErr <- feed(ctx, src, txs)
	}()

	if err := dispatcher.Run(ctx, txs); err != nil && !errors.Is(err, context.Canceled) {
		return nil, engine.RegistryStats{}, err
	}
	if err := <-feedErr; err != nil && !errors.Is(err, context.Canceled) {
		return nil, engine.RegistryStats{}, err
	}

	return dispatcher.Accounts(), dispatcher.Stats(), nil
}

// runStream processes a WebSocket feed until it closes or the run is
// interrupted, then reports whatever state has accumulated.
func runStream(ctx context.Context, cfg *config.EngineConfig, logger *slog.Logger, m *metrics.Metrics) ([]*engine.Account, engine.RegistryStats, error) {
	stream := source.NewStream(source.StreamConfig{
		URL:              cfg.Input.StreamURL,
		BufferSize:       cfg.Input.BufferSize,
		HandshakeTimeout: cfg.Input.HandshakeTimeout,
		ReadTimeout:      cfg.Input.ReadTimeout,
		PingInterval:     cfg.Input.PingInterval,
	}, logger, source.WithStreamMetrics(m))

	if err := stream.Connect(ctx); err != nil {
		return nil, engine.RegistryStats{}, fmt.Errorf("connect stream: %w", err)
	}
	defer stream.Close()

	dispatcher := engine.NewDispatcher(cfg.Processing.Shards, cfg.Processing.QueueSize, logger, engine.WithMetrics(m))
	if err := dispatcher.Run(ctx, stream.Transactions()); err != nil && !errors.Is(err, context.Canceled) {
		return nil, engine.RegistryStats{}, err
	}

	return dispatcher.Accounts(), dispatcher.Stats(), nil
}

// feed pumps CSV records into the dispatcher channel.
func feed(ctx context.Context, src *source.CSV, txs chan<- model.Transaction) error {
	for {
		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case txs <- tx:
		}
	}
}

func writeReport(path string, accounts []*engine.Account) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return report.WriteCSV(out, accounts)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
