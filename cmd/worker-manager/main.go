// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"boreal-workers/internal/common/camunda"
	"boreal-workers/internal/common/config"
	"boreal-workers/internal/common/database"
	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/observability"
	"boreal-workers/internal/common/staff"
	"boreal-workers/internal/engine/dedupe"

	// Intake Workers (2)
	ni "boreal-workers/internal/workers/intake/normalize-intake"
	vid "boreal-workers/internal/workers/intake/validate-intake-data"

	// Catalog Workers (2)
	qp "boreal-workers/internal/workers/catalog/query-products"
	spc "boreal-workers/internal/workers/catalog/sync-product-catalog"

	// Matching Workers (2)
	fep "boreal-workers/internal/workers/matching/filter-eligible-products"
	spm "boreal-workers/internal/workers/matching/score-product-matches"

	// Document Workers (1)
	crd "boreal-workers/internal/workers/documents/compile-required-documents"

	// Submission Workers (2)
	car "boreal-workers/internal/workers/submission/create-application-record"
	sn "boreal-workers/internal/workers/submission/send-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	tracing, err := observability.NewTracing("worker-manager", os.Getenv("JAEGER_ENDPOINT"))
	if err != nil {
		zapLog.Warn("tracing setup failed, continuing without export", zap.Error(err))
	} else {
		defer tracing.Shutdown()
	}

	ctx := context.Background()

	// --- Init Zeebe client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebeClient.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- External service clients ---
	staffClient := staff.NewClient(cfg.StaffAPI)

	kvStore := database.NewRedisKeyValueStore(
		redisClient.Client,
		cfg.Catalog.IdempotencyKeyPrefix,
		time.Duration(cfg.Catalog.IdempotencyTTL)*time.Second,
	)
	keyIssuer := dedupe.NewKeyIssuer(kvStore)

	zapLog.Info("All external service clients initialized")

	// --- Register workers ---
	var workers []*camunda.Worker
	register := func(taskType string, handler camunda.HandlerFunc) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.StartWorker(
			zeebeClient,
			taskType,
			wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond,
			handler,
			zapLog,
		)
		workers = append(workers, w)
	}

	// --- 1. Intake Workers (2) ---
	register(vid.TaskType, vid.NewHandlerWithLeads(vid.LoadConfig(), staffClient, log).Handle)
	register(ni.TaskType, ni.NewHandler(ni.LoadConfig(), log).Handle)

	// --- 2. Catalog Workers (2) ---
	register(spc.TaskType, spc.NewHandler(
		spc.LoadConfig(cfg.Catalog),
		staffClient,
		redisClient.Client,
		esClient.Client,
		log,
	).Handle)
	register(qp.TaskType, qp.NewHandler(qp.LoadConfig(cfg.Catalog), esClient.Client, log).Handle)

	// --- 3. Matching Workers (2) ---
	register(fep.TaskType, fep.NewHandler(fep.LoadConfig(cfg.Catalog), redisClient.Client, log).Handle)
	register(spm.TaskType, spm.NewHandler(spm.LoadConfig(), log).Handle)

	// --- 4. Document Workers (1) ---
	register(crd.TaskType, crd.NewHandler(crd.LoadConfig(cfg.Documents), log).Handle)

	// --- 5. Submission Workers (2) ---
	register(car.TaskType, car.NewHandler(car.LoadConfig(), pg.DB, keyIssuer, staffClient, log).Handle)

	if cfg.Workers[sn.TaskType].Enabled {
		snHandler, err := sn.NewHandler(sn.LoadConfig(cfg.Notifications), log)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		register(sn.TaskType, snHandler.Handle)
	}

	zapLog.Info("Worker registration complete", zap.Int("workers", len(workers)))

	// --- Health & metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := zeebeClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Close()
	}

	zapLog.Info("Worker manager stopped gracefully")
}
