package store

import (
	"context"
	"log"

	"pagesmith/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Journal records successful generations. Pages themselves live on disk;
// the journal only describes them.
type Journal interface {
	Record(context.Context, types.Generation) error
	Recent(context.Context, int) ([]types.Generation, error)
	Close() error
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool: pool,
	}, nil
}

func (p *PostgresStore) Record(ctx context.Context, g types.Generation) error {
	query := `INSERT INTO generations (id, filename, source_page, prompt, title, size, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := p.pool.Exec(
		ctx,
		query,
		g.ID,
		g.Filename,
		g.SourcePage,
		g.Prompt,
		g.Title,
		g.Size,
		g.Model,
		g.CreatedAt,
	)
	return err
}

func (p *PostgresStore) Recent(ctx context.Context, limit int) ([]types.Generation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, filename, source_page, prompt, title, size, model, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []types.Generation
	for rows.Next() {
		var g types.Generation
		if err := rows.Scan(
			&g.ID,
			&g.Filename,
			&g.SourcePage,
			&g.Prompt,
			&g.Title,
			&g.Size,
			&g.Model,
			&g.CreatedAt); err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

func (p *PostgresStore) createTables(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS generations (
		id UUID PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		source_page TEXT NOT NULL,
		prompt TEXT NOT NULL,
		title TEXT,
		size INTEGER NOT NULL,
		model TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_generations_source_page ON generations(source_page);
	`
	_, err := p.pool.Exec(ctx, query)
	return err
}

func (p *PostgresStore) Init(ctx context.Context) error {
	return p.createTables(ctx)
}

// Close closes the connection pool.
func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		log.Println("Postgres connection pool is closed")
	}
	return nil
}
