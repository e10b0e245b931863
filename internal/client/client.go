package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("client not found")
	ErrInvalidName = errors.New("client name is required")
)

// Client is a customer of the contracting firm. Worksites reference clients
// with a nullable foreign key; deleting a client detaches its worksites.
type Client struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
