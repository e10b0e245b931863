package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/amendment"
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

const selectAmendmentColumns = `
	a.id, a.worksite_id, a.title, a.description, a.cost_impact, a.time_impact_hours,
	a.status, a.requested_at, a.decided_at, a.decision_notes, a.created_at, a.updated_at
`

func scanAmendment(s scanner) (*amendment.Amendment, error) {
	var a amendment.Amendment

	var statusStr string

	var description, notes sql.NullString

	if err := s.Scan(
		&a.ID, &a.WorksiteID, &a.Title, &description, &a.CostImpact, &a.TimeImpactHours,
		&statusStr, &a.RequestedAt, &a.DecidedAt, &notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Status = amendment.Status(statusStr)
	a.Description = description.String
	a.DecisionNotes = notes.String

	return &a, nil
}

func (s *Store) CreateAmendment(ctx context.Context, ownerID uuid.UUID, a *amendment.Amendment) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := checkWorksite(ctx, tx, ownerID, a.WorksiteID); err != nil {
			return err
		}

		if err := worksiteStore.LockWorksite(ctx, tx, a.WorksiteID); err != nil {
			return err
		}

		query := `
			INSERT INTO amendments (worksite_id, title, description, cost_impact, time_impact_hours, status, requested_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRowContext(ctx, query,
			a.WorksiteID,
			a.Title,
			a.Description,
			a.CostImpact,
			a.TimeImpactHours,
			a.Status,
			a.RequestedAt,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating amendment: %w", err)
		}

		// Re-evaluates the amendment alert; a freshly created amendment may
		// itself be backdated past the pending threshold.
		if err := worksiteStore.Recalc(ctx, tx, a.WorksiteID); err != nil {
			return err
		}

		e := event.New(a.WorksiteID, event.TypeAmendmentCreated, "Amendment requested", a.Title,
			event.AmendmentPayload{AmendmentID: a.ID, CostImpact: a.CostImpact})
		if err := eventStore.Insert(ctx, tx, e); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}

func (s *Store) GetAmendment(ctx context.Context, ownerID, id uuid.UUID) (*amendment.Amendment, error) {
	var a *amendment.Amendment

	err := database.Retry(ctx, func(ctx context.Context) error {
		var err error

		a, err = getAmendment(ctx, s.db, ownerID, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

func getAmendment(ctx context.Context, q database.Queryer, ownerID, id uuid.UUID) (*amendment.Amendment, error) {
	query := `SELECT ` + selectAmendmentColumns + `
		FROM amendments a
		JOIN worksites w ON w.id = a.worksite_id AND w.deleted_at IS NULL
		WHERE a.id = $1 AND w.owner_id = $2`

	a, err := scanAmendment(q.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, amendment.ErrNotFound
		}

		return nil, fmt.Errorf("getting amendment: %w", err)
	}

	return a, nil
}

func (s *Store) ListAmendments(ctx context.Context, ownerID, worksiteID uuid.UUID, status *amendment.Status) ([]*amendment.Amendment, error) {
	var amendments []*amendment.Amendment

	err := database.Retry(ctx, func(ctx context.Context) error {
		if err := checkWorksite(ctx, s.db, ownerID, worksiteID); err != nil {
			return err
		}

		query := `SELECT ` + selectAmendmentColumns + `
			FROM amendments a
			WHERE a.worksite_id = $1`

		args := []any{worksiteID}

		if status != nil {
			query += " AND a.status = $2"

			args = append(args, *status)
		}

		query += " ORDER BY a.requested_at DESC"

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("listing amendments: %w", err)
		}
		defer rows.Close()

		amendments = amendments[:0]

		for rows.Next() {
			a, err := scanAmendment(rows)
			if err != nil {
				return fmt.Errorf("scanning amendment: %w", err)
			}

			amendments = append(amendments, a)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return amendments, nil
}

// DecideAmendment applies a terminal pending → approved|rejected transition.
// The pending check runs under the worksite lock, so two concurrent decisions
// cannot both pass it.
func (s *Store) DecideAmendment(ctx context.Context, ownerID, id uuid.UUID, status amendment.Status, notes string) (*amendment.Amendment, error) {
	var decided *amendment.Amendment

	err := database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		a, err := getAmendment(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if err := worksiteStore.LockWorksite(ctx, tx, a.WorksiteID); err != nil {
			return err
		}

		// Re-read under the lock: another decision may have committed
		// between the first read and lock acquisition.
		a, err = getAmendment(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if a.Status != amendment.StatusPending {
			return amendment.ErrAlreadyDecided
		}

		err = tx.QueryRowContext(ctx,
			`UPDATE amendments
			 SET status = $1, decided_at = NOW(), decision_notes = $2, updated_at = NOW()
			 WHERE id = $3
			 RETURNING decided_at, updated_at`,
			status, notes, id,
		).Scan(&a.DecidedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("deciding amendment: %w", err)
		}

		a.Status = status
		a.DecisionNotes = notes

		eventType := event.TypeAmendmentRejected
		title := "Amendment rejected"

		if status == amendment.StatusApproved {
			eventType = event.TypeAmendmentApproved
			title = "Amendment approved"

			if _, err := tx.ExecContext(ctx,
				`UPDATE worksites SET budget_initial = budget_initial + $1, updated_at = NOW() WHERE id = $2`,
				a.CostImpact, a.WorksiteID,
			); err != nil {
				return fmt.Errorf("applying cost impact: %w", err)
			}
		}

		if err := worksiteStore.Recalc(ctx, tx, a.WorksiteID); err != nil {
			return err
		}

		e := event.New(a.WorksiteID, eventType, title, a.Title,
			event.AmendmentPayload{AmendmentID: a.ID, CostImpact: a.CostImpact})
		if err := eventStore.Insert(ctx, tx, e); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		decided = a

		return nil
	})
	if err != nil {
		return nil, err
	}

	return decided, nil
}

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
