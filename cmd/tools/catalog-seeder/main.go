// cmd/tools/catalog-seeder/main.go
//
// catalog-seeder primes the product catalog cache and search index outside
// the workflow engine. Useful for local development and for bootstrapping a
// fresh environment before the first scheduled sync runs.
//
// By default it pulls the catalog from the staff API; with -file it reads
// raw records from a local JSON file instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"boreal-workers/internal/common/config"
	"boreal-workers/internal/common/database"
	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/staff"
	spc "boreal-workers/internal/workers/catalog/sync-product-catalog"
)

// fileSource reads raw catalog records from a JSON file. Accepts either a
// bare array or a {"data": [...]} wrapper so staff API dumps work unchanged.
type fileSource struct {
	path string
}

func (s fileSource) FetchCatalog(_ context.Context) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return wrapped.Data, nil
}

func main() {
	filePath := flag.String("file", "", "Seed from a local JSON file instead of the staff API")
	skipES := flag.Bool("skip-es", false, "Skip Elasticsearch indexing, only write the Redis cache")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall seeding timeout")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis client failed", zap.Error(err))
	}
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		zapLog.Fatal("redis unreachable", zap.Error(err))
	}

	var esClient *database.ElasticsearchClient
	if !*skipES {
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch client failed", zap.Error(err))
		}
		if err := esClient.Ping(); err != nil {
			zapLog.Fatal("elasticsearch unreachable", zap.Error(err))
		}
	}

	var source spc.CatalogSource
	if *filePath != "" {
		source = fileSource{path: *filePath}
		zapLog.Info("Seeding catalog from file", zap.String("path", *filePath))
	} else {
		source = staff.NewClient(cfg.StaffAPI)
		zapLog.Info("Seeding catalog from staff API", zap.String("baseURL", cfg.StaffAPI.BaseURL))
	}

	var rawES *elasticsearch.Client
	if esClient != nil {
		rawES = esClient.Client
	}

	handler := spc.NewHandler(
		spc.LoadConfig(cfg.Catalog),
		source,
		redisClient.Client,
		rawES,
		log,
	)

	output, err := handler.Execute(ctx, &spc.Input{Force: true})
	if err != nil {
		zapLog.Fatal("catalog seed failed", zap.Error(err))
	}

	zapLog.Info("Catalog seeded",
		zap.Int("products", output.ProductCount),
		zap.Int("skipped", output.SkippedCount),
		zap.String("syncedAt", output.SyncedAt),
	)
}
