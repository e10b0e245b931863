package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, ownerID uuid.UUID, label string) (cost.Category, error) {
	var category cost.Category

	err := database.Retry(ctx, func(ctx context.Context) error {
		query := `
			SELECT category
			FROM category_mappings
			WHERE owner_id = $1 AND $2 ILIKE '%' || keyword || '%'
			ORDER BY LENGTH(keyword) DESC, created_at DESC
			LIMIT 1
		`

		var categoryStr string

		err := s.db.QueryRowContext(ctx, query, ownerID, label).Scan(&categoryStr)
		if err != nil {
			if err == sql.ErrNoRows {
				category = ""
				return nil
			}

			return fmt.Errorf("finding category: %w", err)
		}

		category = cost.Category(categoryStr)

		return nil
	})
	if err != nil {
		return "", err
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, ownerID uuid.UUID, keyword string, category cost.Category) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO category_mappings (owner_id, keyword, category, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (owner_id, keyword) DO UPDATE SET category = EXCLUDED.category
		`

		if _, err := s.db.ExecContext(ctx, query, ownerID, keyword, category); err != nil {
			return fmt.Errorf("creating mapping: %w", err)
		}

		return nil
	})
}
