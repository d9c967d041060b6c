package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/ScanBox/config"
	scanapi "github.com/BearBump/ScanBox/internal/api/scan_api"
	"github.com/BearBump/ScanBox/internal/broker/kafka"
	"github.com/BearBump/ScanBox/internal/cache/rediscache"
	"github.com/BearBump/ScanBox/internal/services/scans"
	"github.com/BearBump/ScanBox/internal/storage/pgscan"
)

type scanAPIApp struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    scanAPIOpts
	api     *scanapi.ScanAPI
	closeDB func()
}

func mustBootstrapScanAPI() *scanAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	httpAddr := cfg.ScanBox.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	topic := cfg.Kafka.ScanRecordedTopicName
	if topic == "" {
		topic = "scan.recorded"
	}
	candidatesTTL := time.Duration(cfg.ScanBox.CandidatesTTLSeconds) * time.Second
	if candidatesTTL <= 0 {
		candidatesTTL = time.Minute
	}
	scanRatePerMinute := int64(cfg.ScanBox.ScanRateLimitPerMinute)
	if scanRatePerMinute <= 0 {
		scanRatePerMinute = 60
	}

	sslMode := cfg.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, sslMode)
	st := mustOpenPostgresWithRetry(connString, 60*time.Second)

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	rc := rediscache.New(redisAddr)
	rl := rediscache.NewRateLimiter(redisAddr)

	brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
	producer := kafka.NewProducer(brokers)

	perms := scans.NewStaticPermissions(cfg.ScanBox.Capabilities)
	svc := scans.New(st, rc, producer, perms, topic, candidatesTTL)
	api := scanapi.New(svc, rl, scanRatePerMinute)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &scanAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: scanAPIOpts{
			httpAddr: httpAddr,
		},
		api:     api,
		closeDB: st.Close,
	}
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgscan.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgscan.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *scanAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.closeDB != nil {
		a.closeDB()
	}
}

func (a *scanAPIApp) Run() error {
	return runScanAPI(a.ctx, a.opts, a.api)
}
