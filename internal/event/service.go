package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrWorksiteNotFound = errors.New("worksite not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=event
type Repository interface {
	InsertEvent(ctx context.Context, ownerID uuid.UUID, e *Event) error
	ListEvents(ctx context.Context, ownerID, worksiteID uuid.UUID) ([]*Event, error)
}

// Service exposes the append-only timeline. Most events are written by the
// worksite, cost and amendment stores inside their own transactions; Record
// is the standalone path for events that document no other mutation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, ownerID, worksiteID uuid.UUID, t Type, title, description string, payload Payload) (*Event, error) {
	e := New(worksiteID, t, title, description, payload)
	if err := s.repo.InsertEvent(ctx, ownerID, e); err != nil {
		return nil, err
	}

	return e, nil
}

// List returns the timeline newest-first. There is no update or delete.
func (s *Service) List(ctx context.Context, ownerID, worksiteID uuid.UUID) ([]*Event, error) {
	return s.repo.ListEvents(ctx, ownerID, worksiteID)
}
