package wardroberepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/style-ai/internal/domain/wardrobe"
)

// PostgresRepository persists wardrobe items in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wardrobe_items (user_id, category, storage_key, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, item.UserID, item.Category, item.StorageKey, item.ImageURL, item.CreatedAt)
	if err := row.Scan(&item.ID); err != nil {
		return wardrobe.Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, category, storage_key, image_url, created_at
		FROM wardrobe_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []wardrobe.Item
	for rows.Next() {
		var item wardrobe.Item
		if err := rows.Scan(&item.ID, &item.UserID, &item.Category, &item.StorageKey, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.CreatedAt = item.CreatedAt.UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (wardrobe.Item, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, category, storage_key, image_url, created_at
		FROM wardrobe_items
		WHERE id = $1
		LIMIT 1
	`, id)
	var item wardrobe.Item
	if err := row.Scan(&item.ID, &item.UserID, &item.Category, &item.StorageKey, &item.ImageURL, &item.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wardrobe.Item{}, false, nil
		}
		return wardrobe.Item{}, false, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	return item, true, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wardrobe_items WHERE id = $1`, id)
	return err
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
