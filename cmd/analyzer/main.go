package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/reviewsense/config"
	"github.com/spacesedan/reviewsense/internal/clients"
	"github.com/spacesedan/reviewsense/internal/clients/kafka_client"
	"github.com/spacesedan/reviewsense/internal/consumers"
	"github.com/spacesedan/reviewsense/internal/db"
	"github.com/spacesedan/reviewsense/internal/logging"
	"github.com/spacesedan/reviewsense/internal/monitoring"
	"github.com/spacesedan/reviewsense/internal/review"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kafkaCfg := kafka_client.GetKafkaConfig(cfg.Kafka, kafka_client.KAFKA_TOPIC_REVIEW_REQUEST)

	var producer *kafka_client.Producer
	for {
		producer, err = kafka_client.NewProducer(ctx, kafkaCfg, "reviewsense-analyzer-"+cfg.Env)
		if err == nil {
			break
		}
		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer producer.Close()

	var cache review.Cache
	if cfg.Valkey.Enabled() {
		valkeyClient, err := clients.InitValkey(cfg.Valkey)
		if err != nil {
			slog.Warn("[Main] Key-point cache disabled", slog.String("error", err.Error()))
		} else {
			defer valkeyClient.Close()
			cacheHealthy := &atomic.Bool{}
			cacheHealthy.Store(true)
			go monitoring.MonitorHealth(ctx, "valkey", valkeyClient, cacheHealthy, monitoring.HEALTHCHECK_TIMER)
			cache = monitoring.GuardedCache{Cache: valkeyClient, Healthy: cacheHealthy}
		}
	}

	var store consumers.ResultStore
	if cfg.AWS.Endpoint != "" || cfg.Env == "production" {
		dynamo, err := clients.GetDynamoDBClient(ctx, cfg.AWS)
		if err != nil {
			slog.Warn("[Main] Result store disabled", slog.String("error", err.Error()))
		} else {
			store = db.NewReviewStore(dynamo, cfg.AWS.Table)
		}
	}

	analyzer, classifier := clients.BuildAnalyzer(ctx, cfg, cache)
	defer classifier.Close()

	reviewConsumer := consumers.NewReviewConsumer(analyzer, producer, store)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_REVIEW_REQUEST,
		consumers.WrapConsumer(reviewConsumer.Start).Handler())

	if err := kafka_client.StartConsumer(ctx, kafkaCfg); err != nil {
		slog.Error("[Main] Failed to start consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Analyzer stopped")
}
