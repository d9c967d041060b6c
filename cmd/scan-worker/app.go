package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BearBump/ScanBox/config"
	"github.com/BearBump/ScanBox/internal/broker/kafka"
	"github.com/BearBump/ScanBox/internal/services/auditwriter"
	"github.com/BearBump/ScanBox/internal/storage/pgscan"
)

type scanConsumer interface {
	Consume(ctx context.Context, handler func(key, value []byte) error) error
	Close() error
}

type workerFactories struct {
	newStorage  func(cfg *config.Config) (auditwriter.Repository, func(), error)
	newConsumer func(cfg *config.Config, topic, group string) scanConsumer
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStorage: func(cfg *config.Config) (auditwriter.Repository, func(), error) {
			sslMode := cfg.Database.SSLMode
			if sslMode == "" {
				sslMode = "disable"
			}
			connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
				cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, sslMode)
			st, err := pgscan.New(connString)
			if err != nil {
				return nil, nil, err
			}
			return st, st.Close, nil
		},
		newConsumer: func(cfg *config.Config, topic, group string) scanConsumer {
			brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
			return kafka.NewConsumer(brokers, topic, group)
		},
	}
}

func RunScanWorker(ctx context.Context, cfg *config.Config, f workerFactories) error {
	topic := cfg.Kafka.ScanRecordedTopicName
	if topic == "" {
		topic = "scan.recorded"
	}
	group := cfg.ScanBox.KafkaConsumerGroup
	if group == "" {
		group = "scan-worker"
	}

	repo, closeFn, err := f.newStorage(cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	writer := auditwriter.New(repo)

	consumer := f.newConsumer(cfg, topic, group)
	defer func() { _ = consumer.Close() }()

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- runWorkerHTTPServer(ctx, workerHTTPOpts{
			httpAddr: cfg.ScanBox.WorkerHTTPAddr,
			writer:   writer,
			cfg:      cfg,
		})
	}()

	slog.Info("scan-worker consuming", "topic", topic, "group", group)
	consumeErr := make(chan error, 1)
	go func() {
		// Ошибка consume (kafka не готова, insert упал) — ретраим с паузой,
		// сообщения без commit придут повторно.
		for {
			err := consumer.Consume(ctx, func(key, value []byte) error {
				return writer.Handle(ctx, key, value)
			})
			if ctx.Err() != nil {
				consumeErr <- ctx.Err()
				return
			}
			slog.Error("consume scan.recorded", "error", err.Error())
			time.Sleep(1 * time.Second)
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-consumeErr:
		return err
	case err := <-httpErr:
		return err
	}
}
