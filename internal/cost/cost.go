package cost

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category buckets a cost entry for aggregation.
type Category string

const (
	CategoryLabor          Category = "labor"
	CategoryMaterials      Category = "materials"
	CategorySubcontracting Category = "subcontracting"
	CategoryOther          Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLabor, CategoryMaterials, CategorySubcontracting, CategoryOther:
		return true
	}

	return false
}

// Type distinguishes projected costs from incurred ones. Only committed
// entries feed the margin and the budget alert.
type Type string

const (
	TypeEstimated Type = "estimated"
	TypeCommitted Type = "committed"
)

func (t Type) Valid() bool {
	return t == TypeEstimated || t == TypeCommitted
}

var (
	ErrNotFound        = errors.New("cost entry not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("unknown cost category")
	ErrInvalidType     = errors.New("unknown cost type")
)

// Entry is one itemized cost line belonging to a single worksite.
type Entry struct {
	ID         uuid.UUID
	WorksiteID uuid.UUID
	Category   Category
	Type       Type
	Amount     int64 // centimes
	Label      string
	Reference  string
	CostDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
}
