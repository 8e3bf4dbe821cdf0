package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectCheckTimeout = 3 * time.Second

// NewPool opens a pgx pool for the orders database and verifies
// connectivity before handing it out, so a bad DSN fails at startup
// rather than on the first booking request.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open orders pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectCheckTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping orders database: %w", err)
	}
	return pool, nil
}
