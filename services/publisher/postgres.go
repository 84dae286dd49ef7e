package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/pkg/errors"
)

const createJobFeed = `CREATE TABLE IF NOT EXISTS job_feed (
	id          BIGSERIAL PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	source      TEXT NOT NULL,
	raw_data    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertJob = `INSERT INTO job_feed (fingerprint, source, raw_data)
	VALUES ($1, $2, $3::jsonb)`

// execer is the subset of *pgxpool.Pool the publisher uses
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresPublisher implements Publisher by appending rows to job_feed
type PostgresPublisher struct {
	db    execer
	ctx   context.Context
	close func()
}

// NewPostgresPublisher connects to databaseURL and makes sure job_feed exists
func NewPostgresPublisher(ctx context.Context, databaseURL string) (*PostgresPublisher, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.NewPublisher("", "failed to create postgres pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewPublisher("", "postgres ping failed", err)
	}

	p := &PostgresPublisher{db: pool, ctx: ctx, close: pool.Close}
	if _, err := p.db.Exec(ctx, createJobFeed); err != nil {
		pool.Close()
		return nil, errors.NewPublisher("", "failed to create job_feed", err)
	}
	logger.ForPublisher().Info().Msg("Connected to Postgres job feed")
	return p, nil
}

// Publish appends message as a new row; key is the source site.
// Every delivery is kept, repeats across runs included.
func (p *PostgresPublisher) Publish(key string, message []byte) error {
	var meta struct {
		ID          string `json:"id"`
		Fingerprint string `json:"_fingerprint"`
	}
	if err := json.Unmarshal(message, &meta); err != nil {
		return errors.NewPublisher(key, "message is not a job document", err)
	}
	fingerprint := meta.Fingerprint
	if fingerprint == "" {
		fingerprint = fmt.Sprintf("%s:%s", key, meta.ID)
	}

	if _, err := p.db.Exec(p.ctx, insertJob, fingerprint, key, string(message)); err != nil {
		return errors.NewPublisher(key, "failed to insert job", err)
	}
	return nil
}

// TrimStreams is a no-op; the job feed is consumed and pruned downstream
func (p *PostgresPublisher) TrimStreams() error {
	return nil
}

// Close closes the connection pool
func (p *PostgresPublisher) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}
