package wardroberepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

const uniqueViolation = "23505"

// PostgresRepository implements wardrobe.Repository using pgx and pgvector.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the vector extension and items table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("invalid style vector dimensions %d", dimensions)
	}
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS wardrobe_items (
			id UUID PRIMARY KEY,
			filename TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			colors TEXT[] NOT NULL,
			storage_key TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			style_vector vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, dimensions),
		`CREATE INDEX IF NOT EXISTS wardrobe_items_created_at_idx ON wardrobe_items (created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure wardrobe schema: %w", err)
		}
	}
	return nil
}

// Create inserts a new item row.
func (r *PostgresRepository) Create(ctx context.Context, item wardrobe.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wardrobe_items (id, filename, category, colors, storage_key, mime_type, style_vector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.Filename, string(item.Category), item.Colors, item.StorageKey, item.MimeType, pgvector.NewVector(item.StyleVector), item.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateFilename
	}
	return err
}

// List returns every item ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, filename, category, colors, storage_key, mime_type, style_vector, created_at
		FROM wardrobe_items
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]wardrobe.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindByFilename fetches a single item by its unique filename.
func (r *PostgresRepository) FindByFilename(ctx context.Context, filename string) (wardrobe.Item, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, filename, category, colors, storage_key, mime_type, style_vector, created_at
		FROM wardrobe_items
		WHERE filename = $1
		LIMIT 1
	`, filename)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wardrobe.Item{}, false, nil
		}
		return wardrobe.Item{}, false, err
	}
	return item, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item     wardrobe.Item
		category string
		vector   pgvector.Vector
	)
	if err := row.Scan(&item.ID, &item.Filename, &category, &item.Colors, &item.StorageKey, &item.MimeType, &vector, &item.CreatedAt); err != nil {
		return wardrobe.Item{}, err
	}
	item.Category = wardrobe.Category(category)
	item.StyleVector = vector.Slice()
	return item, nil
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
