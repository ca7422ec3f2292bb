package dto

import (
	"github.com/spec-kit/client-service/internal/domain"
)

// ClientRequest is the payload for register and update.
type ClientRequest struct {
	Name   string `json:"name" validate:"required,notblank,min=2,max=50"`
	Email  string `json:"email" validate:"required,email"`
	Gender string `json:"gender" validate:"required,oneof=male female"`
}

// ClientResponse is the wire shape for a persisted client record.
type ClientResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Status string `json:"status"`
}

// NewClientResponse projects a domain client onto the response shape.
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:     client.ID,
		Name:   client.Name,
		Email:  client.Email,
		Gender: string(client.Gender),
		Status: string(client.Status),
	}
}
