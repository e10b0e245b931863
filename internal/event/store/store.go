package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Insert appends one timeline event using the given queryer, so the worksite,
// cost and amendment stores can write events inside their own transactions.
// There is no update or delete counterpart.
func Insert(ctx context.Context, q database.Queryer, e *event.Event) error {
	payload, err := event.MarshalPayload(e.Payload)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, worksite_id, event_type, title, description, payload, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	if err := q.QueryRowContext(ctx, query,
		e.ID,
		e.WorksiteID,
		e.Type,
		e.Title,
		e.Description,
		payload,
		e.EventDate,
	).Scan(&e.CreatedAt); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	return nil
}

func (s *Store) InsertEvent(ctx context.Context, ownerID uuid.UUID, e *event.Event) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		if err := checkWorksite(ctx, s.db, ownerID, e.WorksiteID); err != nil {
			return err
		}

		return Insert(ctx, s.db, e)
	})
}

func (s *Store) ListEvents(ctx context.Context, ownerID, worksiteID uuid.UUID) ([]*event.Event, error) {
	var events []*event.Event

	err := database.Retry(ctx, func(ctx context.Context) error {
		if err := checkWorksite(ctx, s.db, ownerID, worksiteID); err != nil {
			return err
		}

		query := `
			SELECT id, worksite_id, event_type, title, description, payload, event_date, created_at
			FROM events
			WHERE worksite_id = $1
			ORDER BY event_date DESC, id DESC
		`

		rows, err := s.db.QueryContext(ctx, query, worksiteID)
		if err != nil {
			return fmt.Errorf("listing events: %w", err)
		}
		defer rows.Close()

		events = events[:0]

		for rows.Next() {
			e, err := scanEvent(rows)
			if err != nil {
				return fmt.Errorf("scanning event: %w", err)
			}

			events = append(events, e)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func checkWorksite(ctx context.Context, q database.Queryer, ownerID, worksiteID uuid.UUID) error {
	var one int

	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM worksites WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
		worksiteID, ownerID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return event.ErrWorksiteNotFound
		}

		return fmt.Errorf("checking worksite: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*event.Event, error) {
	var e event.Event

	var typeStr string

	var desc sql.NullString

	var payload []byte

	if err := s.Scan(
		&e.ID, &e.WorksiteID, &typeStr, &e.Title, &desc, &payload,
		&e.EventDate, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = event.Type(typeStr)
	e.Description = desc.String

	p, err := event.UnmarshalPayload(e.Type, payload)
	if err != nil {
		return nil, err
	}

	e.Payload = p

	return &e, nil
}
