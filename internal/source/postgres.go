package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/utiming/internal/core"
)

// Querier is the subset of *pgxpool.Pool the source uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// The source expects a table maintained by the timing import job:
//
//	CREATE TABLE race_files (
//	    race_date  text PRIMARY KEY,  -- YYYYMMDD
//	    body       bytea NOT NULL     -- CSV exactly as exported
//	);
const (
	listDatesSQL = `SELECT race_date FROM race_files ORDER BY race_date DESC`
	fetchCSVSQL  = `SELECT body FROM race_files WHERE race_date = $1`
)

// Postgres reads races from the race_files table. It never writes.
type Postgres struct {
	db   Querier
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing connection or pool.
func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres connects a pool whose sessions are read-only.
func OpenPostgres(ctx context.Context, databaseURL string, maxConns, minConns int32) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns > 0 {
		cfg.MinConns = minConns
	}
	cfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	cfg.ConnConfig.RuntimeParams["application_name"] = "utiming"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{db: pool, pool: pool}, nil
}

// ListDates implements core.Source.
func (s *Postgres) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, listDatesSQL)
	if err != nil {
		return nil, fmt.Errorf("query race dates: %w", err)
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan race dates: %w", err)
	}
	return dates, nil
}

// FetchCSV implements core.Source.
func (s *Postgres) FetchCSV(ctx context.Context, date core.RaceDate) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(ctx, fetchCSVSQL, date.String()).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("race_files %s: %w", date, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query race file %s: %w", date, err)
	}
	return body, nil
}

// Close releases the pool opened by OpenPostgres.
func (s *Postgres) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
