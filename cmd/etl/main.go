package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/iot-temp-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/iot-temp-etl/internal/adapter/fileout"
	kafkaadapter "github.com/couchcryptid/iot-temp-etl/internal/adapter/kafka"
	"github.com/couchcryptid/iot-temp-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/iot-temp-etl/internal/config"
	"github.com/couchcryptid/iot-temp-etl/internal/observability"
	"github.com/couchcryptid/iot-temp-etl/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Output directory must exist before the SQLite store opens its file there.
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("failed to create output dir", "error", err)
		return 1
	}

	store, err := sqlite.Open(cfg.ArtifactDBPath)
	if err != nil {
		logger.Error("failed to open artifact store", "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("artifact store close error", "error", err)
		}
	}()

	// Stage events are feature-flagged via KAFKA_BROKERS.
	var notifier pipeline.Notifier
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		notifier = writer
		logger.Info("stage events enabled", "topic", cfg.KafkaEventsTopic)
	} else {
		logger.Info("stage events disabled")
	}

	source := csvfile.NewReader(cfg.InputPath)
	results := fileout.NewWriter(cfg.OutputDir)

	p := pipeline.New(source, store, results, notifier, logger, metrics, cfg.TopDays)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := p.Run(ctx)

	if cfg.PushgatewayURL != "" {
		if err := metrics.PushAll(cfg.PushgatewayURL, "iot-temp-etl"); err != nil {
			logger.Error("metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline failed", "run_id", p.RunID(), "error", runErr)
		return 1
	}

	logger.Info("pipeline succeeded", "run_id", p.RunID(), "report", results.ReportPath())
	return 0
}
