package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/client-service/internal/domain"
)

// Sentinel errors shared by all ClientRepository implementations.
var (
	ErrNotFound       = errors.New("client not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// ClientRepository defines persistence access for client records. Create
// assigns the id; Create and Update together cover insert-or-update.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	// Search returns records matching any provided substring filter (name OR
	// email). Blank filters are ignored; with no filters every record matches.
	Search(ctx context.Context, name, email string) ([]domain.Client, error)
	Delete(ctx context.Context, id int64) error
}
