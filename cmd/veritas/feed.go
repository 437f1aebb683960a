package veritas

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/devbrewai/veritas/internal/watchlist"
)

// loadRecords decodes a watchlist ingestion feed: a JSON array of records,
// each with at least source_list_id and primary_name. Producing this feed
// from raw OFAC/UN/EU source files is the external loader's job.
func loadRecords(path string) ([]watchlist.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open entries file: %w", err)
	}
	defer file.Close()

	var records []watchlist.Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse entries file: %w", err)
	}

	for i, rec := range records {
		if rec.PrimaryName == "" {
			return nil, fmt.Errorf("record %d has no primary_name", i)
		}
	}

	return records, nil
}

// loadSnapshot builds and publishes a snapshot from the feed at path.
func loadSnapshot(path string, logger *zap.Logger) (*watchlist.Store, *watchlist.Snapshot, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, nil, err
	}

	store := watchlist.NewStore(cfg.Blocking.PrefixLength, logger)
	snap, err := store.Load(records)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	return store, snap, nil
}
