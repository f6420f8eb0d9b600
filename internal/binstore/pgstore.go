package binstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"goalbet/migrations"
)

type Database interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PGStore keeps each bin as one jsonb row, preserving the read/replace
// contract while each replace is atomic per document.
type PGStore struct {
	db Database
}

func NewPGStore(db Database) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) ReadBin(ctx context.Context, binID string) ([]byte, error) {
	query := `
        SELECT doc
        FROM bins
        WHERE name = $1
    `
	var doc []byte
	err := s.db.QueryRow(ctx, query, binID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// An unseeded bin reads as an empty document.
			return []byte(`{}`), nil
		}
		zap.L().Error("failed to read bin", zap.String("bin", binID), zap.Error(err))
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, binID, err)
	}
	return doc, nil
}

func (s *PGStore) WriteBin(ctx context.Context, binID string, doc []byte) error {
	query := `
        INSERT INTO bins (name, doc)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
    `
	_, err := s.db.Exec(ctx, query, binID, doc)
	if err != nil {
		zap.L().Error("failed to write bin", zap.String("bin", binID), zap.Error(err))
		return fmt.Errorf("%w: write %s: %w", ErrUnavailable, binID, err)
	}
	return nil
}

func RunMigrations(pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close db: %w", err)
	}
	return nil
}
