package cost

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cost
type Repository interface {
	// CreateEntry, UpdateEntry and DeleteEntry each run ledger mutation,
	// worksite recalculation and timeline event as one transaction
	// serialized per worksite.
	CreateEntry(ctx context.Context, ownerID uuid.UUID, e *Entry) error
	UpdateEntry(ctx context.Context, ownerID uuid.UUID, e *Entry) error
	DeleteEntry(ctx context.Context, ownerID, id uuid.UUID) error

	GetEntry(ctx context.Context, ownerID, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, ownerID, worksiteID uuid.UUID, filter ListFilter) ([]*Entry, error)
	SumByType(ctx context.Context, ownerID, worksiteID uuid.UUID, t Type) (int64, error)
	SumByCategory(ctx context.Context, ownerID, worksiteID uuid.UUID) (map[Category]int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	WorksiteID uuid.UUID
	Category   Category
	Type       Type
	Amount     int64
	Label      string
	Reference  string
	CostDate   time.Time
}

type ListFilter struct {
	Type     *Type
	Category *Category
}

func (s *Service) Add(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Entry, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !params.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	if !params.Type.Valid() {
		return nil, ErrInvalidType
	}

	e := &Entry{
		WorksiteID: params.WorksiteID,
		Category:   params.Category,
		Type:       params.Type,
		Amount:     params.Amount,
		Label:      params.Label,
		Reference:  params.Reference,
		CostDate:   params.CostDate,
	}

	if e.CostDate.IsZero() {
		e.CostDate = time.Now().UTC()
	}

	if err := s.repo.CreateEntry(ctx, ownerID, e); err != nil {
		return nil, err
	}

	return e, nil
}

type UpdateParams struct {
	Category  *Category
	Type      *Type
	Amount    *int64
	Label     *string
	Reference *string
	CostDate  *time.Time
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Entry, error) {
	e, err := s.repo.GetEntry(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		if *params.Amount <= 0 {
			return nil, ErrInvalidAmount
		}

		e.Amount = *params.Amount
	}

	if params.Category != nil {
		if !params.Category.Valid() {
			return nil, ErrInvalidCategory
		}

		e.Category = *params.Category
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, ErrInvalidType
		}

		e.Type = *params.Type
	}

	if params.Label != nil {
		e.Label = *params.Label
	}

	if params.Reference != nil {
		e.Reference = *params.Reference
	}

	if params.CostDate != nil {
		e.CostDate = *params.CostDate
	}

	if err := s.repo.UpdateEntry(ctx, ownerID, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, ownerID, id)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID, worksiteID uuid.UUID, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ownerID, worksiteID, filter)
}

func (s *Service) SumByType(ctx context.Context, ownerID, worksiteID uuid.UUID, t Type) (int64, error) {
	return s.repo.SumByType(ctx, ownerID, worksiteID, t)
}

// Summary aggregates the ledger for a worksite: totals per type and per
// category. Aggregation is unpaginated; entry counts stay small.
type Summary struct {
	Committed  int64
	Estimated  int64
	ByCategory map[Category]int64
}

func (s *Service) Summary(ctx context.Context, ownerID, worksiteID uuid.UUID) (*Summary, error) {
	committed, err := s.repo.SumByType(ctx, ownerID, worksiteID, TypeCommitted)
	if err != nil {
		return nil, err
	}

	estimated, err := s.repo.SumByType(ctx, ownerID, worksiteID, TypeEstimated)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.repo.SumByCategory(ctx, ownerID, worksiteID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Committed:  committed,
		Estimated:  estimated,
		ByCategory: byCategory,
	}, nil
}
