package amendment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=amendment
type Repository interface {
	// CreateAmendment inserts the amendment, re-evaluates the worksite's
	// amendment alert and appends the timeline event in one transaction.
	CreateAmendment(ctx context.Context, ownerID uuid.UUID, a *Amendment) error

	GetAmendment(ctx context.Context, ownerID, id uuid.UUID) (*Amendment, error)
	ListAmendments(ctx context.Context, ownerID, worksiteID uuid.UUID, status *Status) ([]*Amendment, error)

	// DecideAmendment performs a terminal transition from pending. The
	// pending check, the budget baseline move on approval, the worksite
	// recalculation and the timeline event run as one transaction
	// serialized per worksite. A decided amendment yields
	// ErrAlreadyDecided and changes nothing.
	DecideAmendment(ctx context.Context, ownerID, id uuid.UUID, status Status, notes string) (*Amendment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	WorksiteID      uuid.UUID
	Title           string
	Description     string
	CostImpact      int64
	TimeImpactHours *int
	RequestedAt     *time.Time
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Amendment, error) {
	if params.Title == "" {
		return nil, ErrInvalidTitle
	}

	a := &Amendment{
		WorksiteID:      params.WorksiteID,
		Title:           params.Title,
		Description:     params.Description,
		CostImpact:      params.CostImpact,
		TimeImpactHours: params.TimeImpactHours,
		Status:          StatusPending,
		RequestedAt:     time.Now().UTC(),
	}

	if params.RequestedAt != nil {
		a.RequestedAt = *params.RequestedAt
	}

	if err := s.repo.CreateAmendment(ctx, ownerID, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Amendment, error) {
	return s.repo.GetAmendment(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID, worksiteID uuid.UUID, status *Status) ([]*Amendment, error) {
	return s.repo.ListAmendments(ctx, ownerID, worksiteID, status)
}

// Approve moves a pending amendment to approved and applies its cost impact
// to the worksite budget baseline.
func (s *Service) Approve(ctx context.Context, ownerID, id uuid.UUID, notes string) (*Amendment, error) {
	return s.repo.DecideAmendment(ctx, ownerID, id, StatusApproved, notes)
}

// Reject moves a pending amendment to rejected. The budget is untouched.
func (s *Service) Reject(ctx context.Context, ownerID, id uuid.UUID, notes string) (*Amendment, error) {
	return s.repo.DecideAmendment(ctx, ownerID, id, StatusRejected, notes)
}
