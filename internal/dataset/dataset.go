// Package dataset loads the raw country records and builds the immutable
// core.Dataset the query engine reads from.
//
// Three sources are supported, tried in this order by [Load]:
//
//   - PostgreSQL, when DATABASE_URL is set (read-only, see [LoadPostgres])
//   - a JSON file, when DATASET_PATH is set (see [LoadFile])
//   - the dataset bundled into the binary (see [Embedded])
//
// The JSON format is an array of records:
//
//	[{"code": "CA", "continent": "Americas", "areaInKm2": 9984670,
//	  "population": 36624199, "capital": "Ottawa",
//	  "name": {"English": "Canada", "French": "Canada"}}]
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/countries/internal/config"
	"github.com/JonMunkholm/countries/internal/core"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed data/countries.json
var embeddedJSON []byte

// Source names reported by Load.
const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
	SourceEmbedded = "embedded"
)

// Decode reads a JSON array of records from r and validates it.
func Decode(r io.Reader) (*core.Dataset, error) {
	records, err := decodeRecords(r)
	if err != nil {
		return nil, err
	}
	return core.NewDataset(records)
}

func decodeRecords(r io.Reader) ([]core.CountryRecord, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []core.CountryRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return records, nil
}

// LoadFile reads and validates the dataset stored at path.
func LoadFile(path string) (*core.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Embedded returns the dataset bundled into the binary.
func Embedded() (*core.Dataset, error) {
	ds, err := Decode(bytes.NewReader(embeddedJSON))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return ds, nil
}

// Load picks the configured source and returns the validated dataset along
// with the name of the source it came from.
func Load(ctx context.Context, cfg config.DatasetConfig) (*core.Dataset, string, error) {
	switch {
	case cfg.DatabaseURL != "":
		ds, err := loadFromURL(ctx, cfg)
		return ds, SourcePostgres, err

	case cfg.Path != "":
		ds, err := LoadFile(cfg.Path)
		return ds, SourceFile, err

	default:
		ds, err := Embedded()
		return ds, SourceEmbedded, err
	}
}

// loadFromURL opens a short-lived pool, reads the table once and closes it.
// The dataset never changes after startup so no connection is kept.
func loadFromURL(ctx context.Context, cfg config.DatasetConfig) (*core.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Debug("loading dataset from postgres", "table", cfg.Table)
	return LoadPostgres(ctx, pool, cfg.Table)
}
