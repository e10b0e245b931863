package categorize

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
)

var ErrInvalidKeyword = errors.New("keyword is required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindCategory(ctx context.Context, ownerID uuid.UUID, label string) (cost.Category, error)
	CreateMapping(ctx context.Context, ownerID uuid.UUID, keyword string, category cost.Category) error
}

// Service maps cost-line labels to ledger categories using keyword mappings
// learned from user corrections. Imported accounting lines rarely carry a
// usable category, so suggestions come from here.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category whose keyword matches the label, or empty
// string when nothing matches.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, label string) (cost.Category, error) {
	return s.repo.FindCategory(ctx, ownerID, label)
}

// Learn remembers that labels containing keyword belong to category.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, keyword string, category cost.Category) error {
	if keyword == "" {
		return ErrInvalidKeyword
	}

	if !category.Valid() {
		return cost.ErrInvalidCategory
	}

	return s.repo.CreateMapping(ctx, ownerID, keyword, category)
}
