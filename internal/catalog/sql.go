package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens the catalog DB and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:catalog.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/catalog?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schemaChannels); err != nil {
		return nil, err
	}
	return db, nil
}

const schemaChannels = `
CREATE TABLE IF NOT EXISTS channels (
  root TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  num_exercises INTEGER NOT NULL DEFAULT 0,
  available INTEGER NOT NULL DEFAULT 1,
  last_updated BIGINT
);
`

// SQLDirectory serves channel listings from a local catalog DB (sqlite for
// offline installs, postgres otherwise).
type SQLDirectory struct {
	db  *sql.DB
	dsn string
}

func NewSQLDirectory(db *sql.DB, dsn string) *SQLDirectory {
	return &SQLDirectory{db: db, dsn: dsn}
}

func (d *SQLDirectory) FetchChannels(ctx context.Context, f Filter) ([]RawChannel, error) {
	q := `SELECT root, name, num_exercises, available, COALESCE(last_updated, 0) FROM channels`
	var where []string
	if f.HasExercises {
		where = append(where, "num_exercises > 0")
	}
	if f.Available {
		where = append(where, "available <> 0")
	}
	for i, w := range where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}
	q += " ORDER BY name, root"

	rows, err := d.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &FetchError{Source: d.dsn, Err: err}
	}
	defer rows.Close()

	var out []RawChannel
	for rows.Next() {
		var rc RawChannel
		if err := rows.Scan(&rc.Root, &rc.Name, &rc.NumExercises, &rc.Available, &rc.LastUpdated); err != nil {
			return nil, &FetchError{Source: d.dsn, Err: err}
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, &FetchError{Source: d.dsn, Err: err}
	}
	return out, nil
}

// UpsertChannel refreshes one catalog row. The import pipeline that feeds the
// catalog lives outside this service; this is the seam it writes through.
func (d *SQLDirectory) UpsertChannel(ctx context.Context, rc RawChannel) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO channels (root, name, num_exercises, available, last_updated)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (root) DO UPDATE SET
		   name=EXCLUDED.name,
		   num_exercises=EXCLUDED.num_exercises,
		   available=EXCLUDED.available,
		   last_updated=EXCLUDED.last_updated`,
		rc.Root, rc.Name, rc.NumExercises, rc.Available, rc.LastUpdated)
	return err
}
