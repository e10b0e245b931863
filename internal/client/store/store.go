package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/client"
	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
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

const selectClientColumns = `
	c.id, c.owner_id, c.name, c.contact_name, c.email, c.phone, c.address,
	c.created_at, c.updated_at, c.deleted_at
`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var contactName, email, phone, address sql.NullString

	if err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &contactName, &email, &phone, &address,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.ContactName = contactName.String
	c.Email = email.String
	c.Phone = phone.String
	c.Address = address.String

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO clients (owner_id, name, contact_name, email, phone, address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := s.db.QueryRowContext(ctx, query,
			c.OwnerID,
			c.Name,
			c.ContactName,
			c.Email,
			c.Phone,
			c.Address,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}

		return nil
	})
}

func (s *Store) GetClient(ctx context.Context, ownerID, id uuid.UUID) (*client.Client, error) {
	var c *client.Client

	err := database.Retry(ctx, func(ctx context.Context) error {
		query := `SELECT ` + selectClientColumns + `
			FROM clients c
			WHERE c.id = $1 AND c.owner_id = $2 AND c.deleted_at IS NULL`

		var err error

		c, err = scanClient(s.db.QueryRowContext(ctx, query, id, ownerID))
		if err != nil {
			if err == sql.ErrNoRows {
				return client.ErrNotFound
			}

			return fmt.Errorf("getting client: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, ownerID uuid.UUID) ([]*client.Client, error) {
	var clients []*client.Client

	err := database.Retry(ctx, func(ctx context.Context) error {
		query := `SELECT ` + selectClientColumns + `
			FROM clients c
			WHERE c.owner_id = $1 AND c.deleted_at IS NULL
			ORDER BY c.name ASC`

		rows, err := s.db.QueryContext(ctx, query, ownerID)
		if err != nil {
			return fmt.Errorf("listing clients: %w", err)
		}
		defer rows.Close()

		clients = clients[:0]

		for rows.Next() {
			c, err := scanClient(rows)
			if err != nil {
				return fmt.Errorf("scanning client: %w", err)
			}

			clients = append(clients, c)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		query := `
			UPDATE clients
			SET name = $1, contact_name = $2, email = $3, phone = $4, address = $5, updated_at = NOW()
			WHERE id = $6 AND owner_id = $7 AND deleted_at IS NULL
		`

		res, err := s.db.ExecContext(ctx, query,
			c.Name,
			c.ContactName,
			c.Email,
			c.Phone,
			c.Address,
			c.ID,
			c.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("updating client: %w", err)
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return client.ErrNotFound
		}

		return nil
	})
}

// DeleteClient soft-deletes the client and detaches its worksites in one
// transaction; worksite history stays intact with a null client reference.
func (s *Store) DeleteClient(ctx context.Context, ownerID, id uuid.UUID) error {
	return database.Retry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx,
			`UPDATE clients SET deleted_at = NOW() WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`,
			id, ownerID,
		)
		if err != nil {
			return fmt.Errorf("deleting client: %w", err)
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return client.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE worksites SET client_id = NULL, updated_at = NOW() WHERE client_id = $1 AND owner_id = $2`,
			id, ownerID,
		); err != nil {
			return fmt.Errorf("detaching worksites: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}

		return nil
	})
}
