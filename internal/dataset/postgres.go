package dataset

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of a pgx connection the loader needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DefaultTable is the table read when none is configured.
const DefaultTable = "countries"

// Schema is the expected table layout. Names are stored as a JSON object
// keyed by language label, the same shape as the JSON file format.
const Schema = `CREATE TABLE IF NOT EXISTS countries (
    position    integer     NOT NULL,
    code        text        PRIMARY KEY,
    continent   text        NOT NULL,
    area_km2    bigint      NOT NULL CHECK (area_km2 >= 0),
    population  bigint      NOT NULL CHECK (population >= 0),
    capital     text,
    names       jsonb       NOT NULL
);`

// selectQuery builds the read query for table. The name is quoted as an
// identifier so it cannot inject SQL.
func selectQuery(table string) string {
	if table == "" {
		table = DefaultTable
	}
	return fmt.Sprintf(
		"SELECT code, continent, area_km2, population, capital, names FROM %s ORDER BY position, code",
		pgx.Identifier{table}.Sanitize(),
	)
}

// LoadPostgres reads every row of table in position order and validates the
// result. Only a SELECT is ever issued.
func LoadPostgres(ctx context.Context, db DBTX, table string) (*core.Dataset, error) {
	rows, err := db.Query(ctx, selectQuery(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records []core.CountryRecord
	for rows.Next() {
		var (
			r       core.CountryRecord
			capital pgtype.Text
			names   map[core.Language]string
		)
		if err := rows.Scan(&r.Code, &r.Continent, &r.AreaInKm2, &r.Population, &capital, &names); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, len(records)+1, err)
		}
		if capital.Valid {
			r.Capital = capital.String
		}
		r.Name = names
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}

	return core.NewDataset(records)
}
