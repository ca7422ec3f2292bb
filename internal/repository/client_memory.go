package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/client-service/internal/domain"
)

type memoryClientRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Client
}

// NewMemoryClientRepository returns an in-memory implementation. It backs the
// service when no POSTGRES_DSN is configured and the unit tests.
func NewMemoryClientRepository() ClientRepository {
	return &memoryClientRepository{items: make(map[int64]domain.Client)}
}

func (r *memoryClientRepository) Create(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirrors the unique index on clients.email.
	for _, existing := range r.items {
		if existing.Email == client.Email {
			return ErrDuplicateEmail
		}
	}

	r.nextID++
	now := time.Now().UTC()
	client.ID = r.nextID
	client.CreatedAt = now
	client.UpdatedAt = now
	r.items[client.ID] = *client
	return nil
}

func (r *memoryClientRepository) Update(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[client.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range r.items {
		if id != client.ID && other.Email == client.Email {
			return ErrDuplicateEmail
		}
	}

	client.CreatedAt = existing.CreatedAt
	client.UpdatedAt = time.Now().UTC()
	r.items[client.ID] = *client
	return nil
}

func (r *memoryClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &client, nil
}

func (r *memoryClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.items {
		if client.Email == email {
			copied := client
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryClientRepository) Search(ctx context.Context, name, email string) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]domain.Client, 0)
	for _, client := range r.items {
		if matches(client, name, email) {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

func (r *memoryClientRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func matches(client domain.Client, name, email string) bool {
	if name == "" && email == "" {
		return true
	}
	if name != "" && strings.Contains(strings.ToLower(client.Name), strings.ToLower(name)) {
		return true
	}
	if email != "" && strings.Contains(strings.ToLower(client.Email), strings.ToLower(email)) {
		return true
	}
	return false
}
