package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/esatlab/insight-backend/internal/analytics"
	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/database"
	"github.com/esatlab/insight-backend/internal/logger"
	"github.com/esatlab/insight-backend/internal/repository"
)

// seedFile is the on-disk format for bulk table loads.
type seedFile struct {
	// Conversion tables keyed by paper UUID.
	Conversions map[string][]analytics.ConversionRow `json:"conversions"`
	// Distribution tables keyed by "EXAM:section" (use "overall" for the
	// whole-paper table).
	Percentiles map[string][]analytics.PercentileRow `json:"percentiles"`
}

func main() {
	var path string
	flag.StringVar(&path, "file", "tables.json", "Path to the seed file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	tableRepo := repository.NewTableRepository(pool)

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read seed file")
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse seed file")
	}

	for paperIDStr, rows := range seed.Conversions {
		paperID, err := uuid.Parse(paperIDStr)
		if err != nil {
			log.Fatal().Str("paper_id", paperIDStr).Msg("Invalid paper UUID in seed file")
		}
		if err := tableRepo.ReplaceConversionRows(ctx, paperID, rows); err != nil {
			log.Fatal().Err(err).Str("paper_id", paperIDStr).Msg("Failed to load conversion table")
		}
		fmt.Printf("Loaded %d conversion rows for paper %s\n", len(rows), paperIDStr)
	}

	for tableKey, rows := range seed.Percentiles {
		if err := tableRepo.ReplacePercentileRows(ctx, tableKey, rows); err != nil {
			log.Fatal().Err(err).Str("table_key", tableKey).Msg("Failed to load distribution table")
		}
		fmt.Printf("Loaded %d percentile rows for table %s\n", len(rows), tableKey)
	}

	fmt.Println("Seed complete")
}
