package client

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, ownerID, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, ownerID uuid.UUID) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	// DeleteClient soft-deletes the client and detaches its worksites.
	DeleteClient(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID     uuid.UUID
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	if params.Name == "" {
		return nil, ErrInvalidName
	}

	c := &Client{
		OwnerID:     params.OwnerID,
		Name:        params.Name,
		ContactName: params.ContactName,
		Email:       params.Email,
		Phone:       params.Phone,
		Address:     params.Address,
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Client, error) {
	return s.repo.ListClients(ctx, ownerID)
}

type UpdateParams struct {
	Name        *string
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Client, error) {
	c, err := s.repo.GetClient(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, ErrInvalidName
		}

		c.Name = *params.Name
	}

	if params.ContactName != nil {
		c.ContactName = *params.ContactName
	}

	if params.Email != nil {
		c.Email = *params.Email
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}

	if params.Address != nil {
		c.Address = *params.Address
	}

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, ownerID, id)
}
