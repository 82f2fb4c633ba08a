package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg *Config, log *zap.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := cfg.DB.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DatabaseDSN())
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info("connected to PostgreSQL", zap.String("host", cfg.DB.Host), zap.String("database", cfg.DB.Name))
				return pool, nil
			}
			pool.Close()
		}
		log.Warn("failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_in", cfg.DB.RetryInterval),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DB.RetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Execer is satisfied by *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(150) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		status VARCHAR(10) NOT NULL DEFAULT 'Ativo' CHECK (status IN ('Ativo', 'Inativo')),
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS lines (
		id BIGSERIAL PRIMARY KEY,
		account VARCHAR(30) NOT NULL,
		phone VARCHAR(20) NOT NULL, -- digits only
		plan VARCHAR(100) NOT NULL,
		monthly_fee_cents BIGINT NOT NULL CHECK (monthly_fee_cents >= 0),
		responsible VARCHAR(150) NOT NULL,
		department VARCHAR(100) NOT NULL,
		has_chip VARCHAR(3) NOT NULL CHECK (has_chip IN ('Sim', 'Não')),
		activation_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status VARCHAR(20) NOT NULL CHECK (status IN ('Ativa', 'A Cancelar', 'Cancelada')),
		in_use VARCHAR(3) NOT NULL CHECK (in_use IN ('Sim', 'Não')),
		phase VARCHAR(20)
	);

	CREATE INDEX IF NOT EXISTS idx_lines_status ON lines(status);
	CREATE INDEX IF NOT EXISTS idx_lines_department ON lines(department);
`

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db Execer, log *zap.Logger) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	log.Info("AutoMigrate applied successfully")
	return nil
}
