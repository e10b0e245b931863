package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/client"
)

type clientResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ContactName string     `json:"contact_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponseList(cs []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}
