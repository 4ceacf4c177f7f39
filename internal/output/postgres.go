package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/chrisdamba/mealgen/internal/repositories"
	"github.com/chrisdamba/mealgen/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// batchSize is how many records are buffered before a COPY.
const batchSize = 500

var ErrVerifyFailed = errors.New("stored rows do not match written rows")

// PostgresOutput copies order row records into a table in batches.
type PostgresOutput struct {
	ctx     context.Context
	pool    *pgxpool.Pool
	repo    repositories.OrderRowRepository
	config  models.DatabaseConfig
	pending []*models.OrderRowRecord
	// rows written per run, in first-seen order
	runs    []string
	written map[string]int
	log     zerolog.Logger
}

func NewPostgresOutput(ctx context.Context, config models.DatabaseConfig, log zerolog.Logger) (*PostgresOutput, error) {
	if config.URL == "" {
		return nil, errors.New("database url is required for postgres output")
	}
	pool, err := pgxpool.New(ctx, config.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	repo := postgres.NewOrderRowRepository(pool, config.Table)
	if err := repo.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating table %s: %w", config.Table, err)
	}

	p := NewPostgresOutputWithRepository(ctx, repo, config, log)
	p.pool = pool
	return p, nil
}

func NewPostgresOutputWithRepository(ctx context.Context, repo repositories.OrderRowRepository, config models.DatabaseConfig, log zerolog.Logger) *PostgresOutput {
	return &PostgresOutput{
		ctx:     ctx,
		repo:    repo,
		config:  config,
		written: make(map[string]int),
		log:     log,
	}
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	var record models.OrderRowRecord
	if err := json.Unmarshal(msg, &record); err != nil {
		return err
	}

	if _, seen := p.written[record.RunID]; !seen {
		if err := p.startRun(record.RunID); err != nil {
			return err
		}
	}
	p.written[record.RunID]++

	p.pending = append(p.pending, &record)
	if len(p.pending) >= batchSize {
		return p.flush()
	}
	return nil
}

func (p *PostgresOutput) startRun(runID string) error {
	p.runs = append(p.runs, runID)
	p.written[runID] = 0
	if !p.config.ReplaceRun {
		return nil
	}
	if err := p.repo.DeleteRun(p.ctx, runID); err != nil {
		return fmt.Errorf("failed to clear run %s: %w", runID, err)
	}
	p.log.Debug().Str("run_id", runID).Msg("previous rows of run cleared")
	return nil
}

func (p *PostgresOutput) flush() error {
	if len(p.pending) == 0 {
		return nil
	}
	if err := p.repo.BulkCreate(p.ctx, p.pending); err != nil {
		return fmt.Errorf("failed to copy %d order rows: %w", len(p.pending), err)
	}
	p.log.Debug().Int("rows", len(p.pending)).Msg("order rows copied")
	p.pending = p.pending[:0]
	return nil
}

// verify reads every written run back and compares its row count.
func (p *PostgresOutput) verify() error {
	for _, runID := range p.runs {
		stored, err := p.repo.GetByRun(p.ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to read back run %s: %w", runID, err)
		}
		if len(stored) != p.written[runID] {
			return fmt.Errorf("%w: run %s has %d rows, wrote %d", ErrVerifyFailed, runID, len(stored), p.written[runID])
		}
	}

	total, err := p.repo.Count(p.ctx)
	if err != nil {
		return fmt.Errorf("failed to count order rows: %w", err)
	}
	p.log.Info().Int("runs", len(p.runs)).Int("table_rows", total).Msg("postgres output verified")
	return nil
}

func (p *PostgresOutput) Close() error {
	err := p.flush()
	if err == nil && p.config.Verify {
		err = p.verify()
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return err
}
