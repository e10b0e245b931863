package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
	eventStore "github.com/ziz0u9/MillesBTP-sub000/internal/event/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
	worksiteStore "github.com/ziz0u9/MillesBTP-sub000/internal/worksite/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	c.id, c.worksite_id, c.category, c.type, c.amount, c.label, c.reference,
	c.cost_date, c.created_at, c.updated_at, c.deleted_at
`

func scanEntry(s scanner) (*cost.Entry, error) {
	var e cost.Entry

	var categoryStr, typeStr string

	var label, reference sql.NullString

	if err := s.Scan(
		&e.ID, &e.WorksiteID, &categoryStr, &typeStr, &e.Amount, &label, &reference,
		&e.CostDate, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Category = cost.Category(categoryStr)
	e.Type = cost.Type(typeStr)
	e.Label = label.String
	e.Reference = reference.String

	return &e, nil
}

// checkWorksite verifies the worksite exists and belongs to the owner.
func checkWorksite(ctx context.Context, q database.Queryer, ownerID, worksiteID uuid.UUID) error {
	var one int

	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM worksites WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		worksiteID, ownerID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return worksite.ErrNotFound
		}

		return fmt.Errorf("checking worksite: %w", err)
	}

	return nil
}

func costEvent(t event.Type, title string, e *cost.Entry) *event.Event {
	return event.New(e.WorksiteID, t, title, e.Label, event.CostPayload{
		EntryID:  e.ID,
		Category: string(e.Category),
		CostType: string(e.Type),
		Amount:   e.Amount,
	})
}

func (s *Store) CreateEntry(ctx context.Context, ownerID uuid.UUID, e *cost.Entry) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := checkWorksite(ctx, tx, ownerID, e.WorksiteID); err != nil {
			return err
		}

		if err := worksiteStore.LockWorksite(ctx, tx, e.WorksiteID); err != nil {
			return err
		}

		query := `
			INSERT INTO cost_entries (worksite_id, category, type, amount, label, reference, cost_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRowContext(ctx, query,
			e.WorksiteID,
			e.Category,
			e.Type,
			e.Amount,
			e.Label,
			e.Reference,
			e.CostDate,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating cost entry: %w", err)
		}

		if err := worksiteStore.Recalc(ctx, tx, e.WorksiteID); err != nil {
			return err
		}

		if err := eventStore.Insert(ctx, tx, costEvent(event.TypeCostAdded, "Cost added", e)); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}

func (s *Store) UpdateEntry(ctx context.Context, ownerID uuid.UUID, e *cost.Entry) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := checkWorksite(ctx, tx, ownerID, e.WorksiteID); err != nil {
			return err
		}

		if err := worksiteStore.LockWorksite(ctx, tx, e.WorksiteID); err != nil {
			return err
		}

		query := `
			UPDATE cost_entries
			SET category = $1, type = $2, amount = $3, label = $4, reference = $5, cost_date = $6, updated_at = NOW()
			WHERE id = $7 AND worksite_id = $8 AND deleted_at IS NULL
		`

		res, err := tx.ExecContext(ctx, query,
			e.Category,
			e.Type,
			e.Amount,
			e.Label,
			e.Reference,
			e.CostDate,
			e.ID,
			e.WorksiteID,
		)
		if err != nil {
			return fmt.Errorf("updating cost entry: %w", err)
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return cost.ErrNotFound
		}

		if err := worksiteStore.Recalc(ctx, tx, e.WorksiteID); err != nil {
			return err
		}

		if err := eventStore.Insert(ctx, tx, costEvent(event.TypeCostUpdated, "Cost updated", e)); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}

func (s *Store) DeleteEntry(ctx context.Context, ownerID, id uuid.UUID) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		e, err := getEntry(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if err := worksiteStore.LockWorksite(ctx, tx, e.WorksiteID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE cost_entries SET deleted_at = NOW() WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("deleting cost entry: %w", err)
		}

		if err := worksiteStore.Recalc(ctx, tx, e.WorksiteID); err != nil {
			return err
		}

		if err := eventStore.Insert(ctx, tx, costEvent(event.TypeCostDeleted, "Cost deleted", e)); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}

func getEntry(ctx context.Context, q database.Queryer, ownerID, id uuid.UUID) (*cost.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM cost_entries c
		JOIN worksites w ON w.id = c.worksite_id AND w.deleted_at IS NULL
		WHERE c.id = $1 AND w.owner_id = $2 AND c.deleted_at IS NULL`

	e, err := scanEntry(q.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cost.ErrNotFound
		}

		return nil, fmt.Errorf("getting cost entry: %w", err)
	}

	return e, nil
}

func (s *Store) GetEntry(ctx context.Context, ownerID, id uuid.UUID) (*cost.Entry, error) {
	var e *cost.Entry

	err := database.Retry(ctx, func(ctx context.Context) error {
		var err error

		e, err = getEntry(ctx, s.db, ownerID, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, ownerID, worksiteID uuid.UUID, filter cost.ListFilter) ([]*cost.Entry, error) {
	var entries []*cost.Entry

	err := database.Retry(ctx, func(ctx context.Context) error {
		if err := checkWorksite(ctx, s.db, ownerID, worksiteID); err != nil {
			return err
		}

		query := `SELECT ` + selectEntryColumns + `
			FROM cost_entries c
			WHERE c.worksite_id = $1 AND c.deleted_at IS NULL`

		args := []any{worksiteID}
		argIdx := 2

		if filter.Type != nil {
			query += fmt.Sprintf(" AND c.type = $%d", argIdx)

			args = append(args, *filter.Type)
			argIdx++
		}

		if filter.Category != nil {
			query += fmt.Sprintf(" AND c.category = $%d", argIdx)

			args = append(args, *filter.Category)
			argIdx++
		}

		query += " ORDER BY c.cost_date DESC, c.created_at DESC"

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("listing cost entries: %w", err)
		}
		defer rows.Close()

		entries = entries[:0]

		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return fmt.Errorf("scanning cost entry: %w", err)
			}

			entries = append(entries, e)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *Store) SumByType(ctx context.Context, ownerID, worksiteID uuid.UUID, t cost.Type) (int64, error) {
	var sum int64

	err := database.Retry(ctx, func(ctx context.Context) error {
		if err := checkWorksite(ctx, s.db, ownerID, worksiteID); err != nil {
			return err
		}

		err := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM cost_entries
			 WHERE worksite_id = $1 AND type = $2 AND deleted_at IS NULL`,
			worksiteID, t,
		).Scan(&sum)
		if err != nil {
			return fmt.Errorf("summing by type: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (s *Store) SumByCategory(ctx context.Context, ownerID, worksiteID uuid.UUID) (map[cost.Category]int64, error) {
	var sums map[cost.Category]int64

	err := database.Retry(ctx, func(ctx context.Context) error {
		if err := checkWorksite(ctx, s.db, ownerID, worksiteID); err != nil {
			return err
		}

		rows, err := s.db.QueryContext(ctx,
			`SELECT category, COALESCE(SUM(amount), 0) FROM cost_entries
			 WHERE worksite_id = $1 AND deleted_at IS NULL
			 GROUP BY category`,
			worksiteID,
		)
		if err != nil {
			return fmt.Errorf("summing by category: %w", err)
		}
		defer rows.Close()

		sums = make(map[cost.Category]int64)

		for rows.Next() {
			var categoryStr string

			var sum int64

			if err := rows.Scan(&categoryStr, &sum); err != nil {
				return fmt.Errorf("scanning category sum: %w", err)
			}

			sums[cost.Category(categoryStr)] = sum
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return sums, nil
}
