package worksite

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=worksite
type Repository interface {
	CreateWorksite(ctx context.Context, w *Worksite) error
	GetWorksite(ctx context.Context, ownerID, id uuid.UUID) (*Worksite, error)
	ListWorksites(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Worksite, error)

	// UpdateWorksite persists descriptive fields and recalculates derived
	// fields in the same transaction (schedule dates feed the admin alert).
	UpdateWorksite(ctx context.Context, w *Worksite) error

	// UpdateStatus, UpdateBudget and Recalculate each run as a single
	// transaction serialized per worksite: mutation, derived-field refresh
	// and timeline event commit or roll back together.
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) (*Worksite, error)
	UpdateBudget(ctx context.Context, ownerID, id uuid.UUID, budget int64) (*Worksite, error)
	Recalculate(ctx context.Context, ownerID, id uuid.UUID) (*Worksite, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID        uuid.UUID
	ClientID       *uuid.UUID
	Name           string
	Address        string
	BudgetInitial  int64
	StartDate      *time.Time
	PlannedEndDate *time.Time
}

type ListFilter struct {
	Status        *Status
	Profitability *Profitability
	ClientID      *uuid.UUID
}

// Create registers a new worksite with a fresh financial state: active,
// no costs, trivially profitable. The creation event is recorded by the
// repository in the same transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Worksite, error) {
	if params.Name == "" {
		return nil, ErrInvalidName
	}

	if params.BudgetInitial < 0 {
		return nil, ErrInvalidBudget
	}

	if err := checkDates(params.StartDate, params.PlannedEndDate); err != nil {
		return nil, err
	}

	w := &Worksite{
		OwnerID:        params.OwnerID,
		ClientID:       params.ClientID,
		Name:           params.Name,
		Address:        params.Address,
		Status:         StatusActive,
		BudgetInitial:  params.BudgetInitial,
		Profitability:  Profitable,
		StartDate:      params.StartDate,
		PlannedEndDate: params.PlannedEndDate,
	}

	d := Derive(w.BudgetInitial, 0)
	w.MarginEstimated = d.MarginEstimated
	w.MarginPercentage = d.MarginPercentage
	w.Profitability = d.Profitability
	w.BudgetAlert = d.BudgetAlert

	if err := s.repo.CreateWorksite(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Worksite, error) {
	return s.repo.GetWorksite(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Worksite, error) {
	return s.repo.ListWorksites(ctx, ownerID, filter)
}

type UpdateParams struct {
	Name           *string
	Address        *string
	ClientID       *uuid.UUID
	RemoveClient   bool
	StartDate      *time.Time
	PlannedEndDate *time.Time
}

// Update patches descriptive fields. Budget and status have dedicated paths
// because they feed the derivation pipeline and the event timeline.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Worksite, error) {
	w, err := s.repo.GetWorksite(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, ErrInvalidName
		}

		w.Name = *params.Name
	}

	if params.Address != nil {
		w.Address = *params.Address
	}

	if params.RemoveClient {
		w.ClientID = nil
	} else if params.ClientID != nil {
		w.ClientID = params.ClientID
	}

	if params.StartDate != nil {
		w.StartDate = params.StartDate
	}

	if params.PlannedEndDate != nil {
		w.PlannedEndDate = params.PlannedEndDate
	}

	if err := checkDates(w.StartDate, w.PlannedEndDate); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWorksite(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) (*Worksite, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.repo.UpdateStatus(ctx, ownerID, id, status)
}

// UpdateBudget is the direct budget edit path. It funnels through the same
// recalculation and event pipeline as every other mutation; the derived cost
// caches are never written by hand.
func (s *Service) UpdateBudget(ctx context.Context, ownerID, id uuid.UUID, budget int64) (*Worksite, error) {
	if budget < 0 {
		return nil, ErrInvalidBudget
	}

	return s.repo.UpdateBudget(ctx, ownerID, id, budget)
}

// Recalculate re-derives all cached financial fields from the cost ledger and
// pending amendments. Safe to call redundantly.
func (s *Service) Recalculate(ctx context.Context, ownerID, id uuid.UUID) (*Worksite, error) {
	return s.repo.Recalculate(ctx, ownerID, id)
}

func checkDates(start, plannedEnd *time.Time) error {
	if start != nil && plannedEnd != nil && plannedEnd.Before(*start) {
		return ErrDatesOutOfOrder
	}

	return nil
}
