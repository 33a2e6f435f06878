// Package postgres предоставляет подключение к PostgreSQL через pgxpool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VechkanovVV/bugtrack/internal/config"
)

const (
	// PoolMaxConns - максимальное кол-во соединений в pool.
	PoolMaxConns = int32(25)
	// PoolMinConns - минимальное кол-во поддерживаемых соединений в pool.
	PoolMinConns = int32(5)
	// PoolMaxConnLifetime - максимальное время жизни соединения в pool.
	PoolMaxConnLifetime = 30 * time.Minute
	// PoolMaxConnIdleTime - максимальное время простоя соединения.
	PoolMaxConnIdleTime = 5 * time.Minute
	// PoolHealthCheckPeriod - переодичность проверки соединения.
	PoolHealthCheckPeriod = 1 * time.Minute
)

// NewPool создаёт новый pool соединений к PostgreSQL по конфигурации бд.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	conn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLmode)

	pcfg, err := pgxpool.ParseConfig(conn)
	if err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}

	pcfg.MaxConns = PoolMaxConns
	pcfg.MinConns = PoolMinConns
	pcfg.MaxConnLifetime = PoolMaxConnLifetime
	pcfg.MaxConnIdleTime = PoolMaxConnIdleTime
	pcfg.HealthCheckPeriod = PoolHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool failed: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pool ping failed: %w", err)
	}

	return pool, nil
}
