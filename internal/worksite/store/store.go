package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
	eventStore "github.com/ziz0u9/MillesBTP-sub000/internal/event/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectWorksiteColumns = `
	w.id, w.owner_id, w.client_id, w.name, w.address, w.status,
	w.budget_initial, w.costs_committed, w.costs_estimated,
	w.margin_estimated, w.margin_percentage, w.profitability_status,
	w.has_budget_alert, w.has_amendment_alert, w.has_admin_alert,
	w.start_date, w.planned_end_date, w.created_at, w.updated_at, w.deleted_at
`

func scanWorksite(s scanner) (*worksite.Worksite, error) {
	var w worksite.Worksite

	var statusStr, profitStr string

	var address sql.NullString

	if err := s.Scan(
		&w.ID, &w.OwnerID, &w.ClientID, &w.Name, &address, &statusStr,
		&w.BudgetInitial, &w.CostsCommitted, &w.CostsEstimated,
		&w.MarginEstimated, &w.MarginPercentage, &profitStr,
		&w.BudgetAlert, &w.AmendmentAlert, &w.AdminAlert,
		&w.StartDate, &w.PlannedEndDate, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	); err != nil {
		return nil, err
	}

	w.Address = address.String
	w.Status = worksite.Status(statusStr)
	w.Profitability = worksite.Profitability(profitStr)

	return &w, nil
}

// LockWorksite takes the per-worksite advisory transaction lock. Every
// mutation that touches derived financial fields acquires it first, so
// concurrent recalculations on one worksite are serialized instead of
// last-write-wins racing.
func LockWorksite(ctx context.Context, q database.Queryer, id uuid.UUID) error {
	h := fnv.New64a()
	h.Write([]byte(id.String()))

	if _, err := q.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", int64(h.Sum64())); err != nil {
		return fmt.Errorf("acquiring worksite lock: %w", err)
	}

	return nil
}

// Recalc re-derives all cached financial fields of a worksite from the cost
// ledger and pending amendments, inside the caller's transaction. The cost
// and amendment stores call it after their own mutations.
func Recalc(ctx context.Context, q database.Queryer, id uuid.UUID) error {
	var (
		budget         int64
		statusStr      string
		startDate      *time.Time
		plannedEndDate *time.Time
	)

	err := q.QueryRowContext(ctx,
		`SELECT budget_initial, status, start_date, planned_end_date
		 FROM worksites WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&budget, &statusStr, &startDate, &plannedEndDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return worksite.ErrNotFound
		}

		return fmt.Errorf("reading worksite for recalc: %w", err)
	}

	var committed, estimated int64

	err = q.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'committed'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'estimated'), 0)
		 FROM cost_entries WHERE worksite_id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&committed, &estimated)
	if err != nil {
		return fmt.Errorf("summing cost entries: %w", err)
	}

	var oldestPending *time.Time

	err = q.QueryRowContext(ctx,
		`SELECT MIN(requested_at) FROM amendments WHERE worksite_id = $1 AND status = 'pending'`,
		id,
	).Scan(&oldestPending)
	if err != nil {
		return fmt.Errorf("reading pending amendments: %w", err)
	}

	now := time.Now().UTC()
	status := worksite.Status(statusStr)
	d := worksite.Derive(budget, committed)

	_, err = q.ExecContext(ctx,
		`UPDATE worksites
		 SET costs_committed = $1, costs_estimated = $2,
		     margin_estimated = $3, margin_percentage = $4,
		     profitability_status = $5, has_budget_alert = $6,
		     has_amendment_alert = $7, has_admin_alert = $8,
		     updated_at = NOW()
		 WHERE id = $9`,
		committed,
		estimated,
		d.MarginEstimated,
		d.MarginPercentage,
		d.Profitability,
		d.BudgetAlert,
		worksite.DeriveAmendmentAlert(oldestPending, now),
		worksite.DeriveAdminAlert(status, startDate, plannedEndDate, now),
		id,
	)
	if err != nil {
		return fmt.Errorf("writing derived fields: %w", err)
	}

	return nil
}

func (s *Store) CreateWorksite(ctx context.Context, w *worksite.Worksite) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		query := `
			INSERT INTO worksites (owner_id, client_id, name, address, status,
				budget_initial, costs_committed, costs_estimated,
				margin_estimated, margin_percentage, profitability_status,
				has_budget_alert, has_amendment_alert, has_admin_alert,
				start_date, planned_end_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 0, 0, $7, $8, $9, $10, false, false, $11, $12, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRowContext(ctx, query,
			w.OwnerID,
			w.ClientID,
			w.Name,
			w.Address,
			w.Status,
			w.BudgetInitial,
			w.MarginEstimated,
			w.MarginPercentage,
			w.Profitability,
			w.BudgetAlert,
			w.StartDate,
			w.PlannedEndDate,
		).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating worksite: %w", err)
		}

		e := event.New(w.ID, event.TypeCreation, "Worksite created", w.Name, nil)
		if err := eventStore.Insert(ctx, tx, e); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}

func (s *Store) GetWorksite(ctx context.Context, ownerID, id uuid.UUID) (*worksite.Worksite, error) {
	var w *worksite.Worksite

	err := database.Retry(ctx, func(ctx context.Context) error {
		query := `SELECT ` + selectWorksiteColumns + `
			FROM worksites w
			WHERE w.id = $1 AND w.owner_id = $2 AND w.deleted_at IS NULL`

		var err error

		w, err = scanWorksite(s.db.QueryRowContext(ctx, query, id, ownerID))
		if err != nil {
			if err == sql.ErrNoRows {
				return worksite.ErrNotFound
			}

			return fmt.Errorf("getting worksite: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Store) ListWorksites(ctx context.Context, ownerID uuid.UUID, filter worksite.ListFilter) ([]*worksite.Worksite, error) {
	var sites []*worksite.Worksite

	err := database.Retry(ctx, func(ctx context.Context) error {
		query := `SELECT ` + selectWorksiteColumns + `
			FROM worksites w
			WHERE w.owner_id = $1 AND w.deleted_at IS NULL`

		args := []any{ownerID}
		argIdx := 2

		if filter.Status != nil {
			query += fmt.Sprintf(" AND w.status = $%d", argIdx)

			args = append(args, *filter.Status)
			argIdx++
		}

		if filter.Profitability != nil {
			query += fmt.Sprintf(" AND w.profitability_status = $%d", argIdx)

			args = append(args, *filter.Profitability)
			argIdx++
		}

		if filter.ClientID != nil {
			query += fmt.Sprintf(" AND w.client_id = $%d", argIdx)

			args = append(args, *filter.ClientID)
			argIdx++
		}

		query += " ORDER BY w.created_at DESC"

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("listing worksites: %w", err)
		}
		defer rows.Close()

		sites = sites[:0]

		for rows.Next() {
			w, err := scanWorksite(rows)
			if err != nil {
				return fmt.Errorf("scanning worksite: %w", err)
			}

			sites = append(sites, w)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return sites, nil
}

func (s *Store) UpdateWorksite(ctx context.Context, w *worksite.Worksite) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := LockWorksite(ctx, tx, w.ID); err != nil {
			return err
		}

		query := `
			UPDATE worksites
			SET client_id = $1, name = $2, address = $3,
			    start_date = $4, planned_end_date = $5, updated_at = NOW()
			WHERE id = $6 AND owner_id = $7 AND deleted_at IS NULL
		`

		res, err := tx.ExecContext(ctx, query,
			w.ClientID,
			w.Name,
			w.Address,
			w.StartDate,
			w.PlannedEndDate,
			w.ID,
			w.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("updating worksite: %w", err)
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return worksite.ErrNotFound
		}

		// Schedule dates feed the admin alert.
		if err := Recalc(ctx, tx, w.ID); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}

func (s *Store) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status worksite.Status) (*worksite.Worksite, error) {
	return s.mutate(ctx, ownerID, id, func(ctx context.Context, tx *sql.Tx, prev *worksite.Worksite) error {
		// A no-op transition gets no timeline entry.
		if prev.Status == status {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE worksites SET status = $1, updated_at = NOW() WHERE id = $2`,
			status, id,
		); err != nil {
			return fmt.Errorf("updating status: %w", err)
		}

		e := event.New(id, event.TypeStatusChanged,
			fmt.Sprintf("Status changed to %s", status), "",
			event.StatusPayload{From: string(prev.Status), To: string(status)})

		return eventStore.Insert(ctx, tx, e)
	})
}

func (s *Store) UpdateBudget(ctx context.Context, ownerID, id uuid.UUID, budget int64) (*worksite.Worksite, error) {
	return s.mutate(ctx, ownerID, id, func(ctx context.Context, tx *sql.Tx, prev *worksite.Worksite) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE worksites SET budget_initial = $1, updated_at = NOW() WHERE id = $2`,
			budget, id,
		); err != nil {
			return fmt.Errorf("updating budget: %w", err)
		}

		e := event.New(id, event.TypeBudgetUpdated, "Budget updated", "",
			event.BudgetPayload{Previous: prev.BudgetInitial, New: budget})

		return eventStore.Insert(ctx, tx, e)
	})
}

func (s *Store) Recalculate(ctx context.Context, ownerID, id uuid.UUID) (*worksite.Worksite, error) {
	return s.mutate(ctx, ownerID, id, nil)
}

// mutate runs a serialized transaction on one worksite: advisory lock, the
// optional mutation, recalculation, commit, then re-read. The mutation sees
// the pre-mutation row.
func (s *Store) mutate(ctx context.Context, ownerID, id uuid.UUID, fn func(ctx context.Context, tx *sql.Tx, prev *worksite.Worksite) error) (*worksite.Worksite, error) {
	err := database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := LockWorksite(ctx, tx, id); err != nil {
			return err
		}

		query := `SELECT ` + selectWorksiteColumns + `
			FROM worksites w
			WHERE w.id = $1 AND w.owner_id = $2 AND w.deleted_at IS NULL`

		prev, err := scanWorksite(tx.QueryRowContext(ctx, query, id, ownerID))
		if err != nil {
			if err == sql.ErrNoRows {
				return worksite.ErrNotFound
			}

			return fmt.Errorf("reading worksite: %w", err)
		}

		if fn != nil {
			if err := fn(ctx, tx, prev); err != nil {
				return err
			}
		}

		if err := Recalc(ctx, tx, id); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetWorksite(ctx, ownerID, id)
}
