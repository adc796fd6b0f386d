package output

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

// PostgresSink stores published payloads in per-topic tables for local
// inspection of the stream. Payloads are kept as jsonb so the sink stays
// agnostic to the reading schema.
type PostgresSink struct {
	pool *pgxpool.Pool

	mu      sync.Mutex
	created map[string]bool
}

func NewPostgresSink(ctx context.Context, cfg *models.DatabaseConfig) (*PostgresSink, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &PostgresSink{pool: pool, created: make(map[string]bool)}, nil
}

func (p *PostgresSink) SendBatch(ctx context.Context, topic string, payloads [][]byte) error {
	table := topicToTable(topic)
	if err := p.ensureTable(ctx, table); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	insert := fmt.Sprintf("INSERT INTO %s (payload) VALUES ($1::jsonb)", table)
	for _, payload := range payloads {
		batch.Queue(insert, string(payload))
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range payloads {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func (p *PostgresSink) ensureTable(ctx context.Context, table string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.created[table] {
		return nil
	}

	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			payload JSONB NOT NULL,
			received_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table)
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	p.created[table] = true
	return nil
}

func (p *PostgresSink) Close() error {
	p.pool.Close()
	return nil
}

// topicToTable turns a topic name into a safe table identifier, e.g.
// "traffic-sensors" becomes "traffic_sensors".
func topicToTable(topic string) string {
	table := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, topic)
	if table == "" || table[0] >= '0' && table[0] <= '9' {
		table = "t_" + table
	}
	return table
}
