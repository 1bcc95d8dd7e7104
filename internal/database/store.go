package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Store is the handle every service receives. ExecTx runs fn inside a single
// transaction, committing only when fn returns nil.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(q Querier) error) error
}

type PgStore struct {
	*Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{
		Queries: New(pool),
		pool:    pool,
	}
}

func (s *PgStore) ExecTx(ctx context.Context, fn func(q Querier) error) error {
	// create a transaction
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction, %w", err)
	}
	defer tx.Rollback(ctx)

	// crate a query tool with tx
	if err = fn(s.WithTx(tx)); err != nil {
		return err
	}

	// commit the tx
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("cannot commit transaction, %w", err)
	}
	return nil
}

// Connect opens a pool and pings it once.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url, %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool, %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database, %w", err)
	}

	log.WithField("max_conns", config.MaxConns).Info("connected to database")
	return pool, nil
}
