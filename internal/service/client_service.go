package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/client-service/internal/directory"
	"github.com/spec-kit/client-service/internal/domain"
	"github.com/spec-kit/client-service/internal/events"
	"github.com/spec-kit/client-service/internal/repository"
	apperrors "github.com/spec-kit/client-service/pkg/util"
)

// ClientInput carries the caller-supplied client fields. It never carries id
// or status.
type ClientInput struct {
	Name   string
	Email  string
	Gender domain.Gender
}

// ClientService coordinates the client record workflows.
type ClientService struct {
	clients    repository.ClientRepository
	directory  directory.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ClientDependencies bundles collaborators for the client service.
type ClientDependencies struct {
	ClientRepo repository.ClientRepository
	Directory  directory.Client
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewClientService constructs the service.
func NewClientService(deps ClientDependencies) *ClientService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clients:    deps.ClientRepo,
		directory:  deps.Directory,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register runs the registration reconciliation workflow: local uniqueness
// check, directory lookup, then persistence. When the directory already knows
// the client, the directory's name and email are stored (not the submitted
// ones) and the record is tagged "exists"; otherwise the submitted fields are
// stored with status "active".
func (s *ClientService) Register(ctx context.Context, input ClientInput) (*domain.Client, error) {
	_, err := s.clients.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, apperrors.NewDuplicateEmail()
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	candidate, err := s.directory.Lookup(ctx, input.Name, input.Email)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("directory service", err)
	}

	client := &domain.Client{
		Name:   input.Name,
		Email:  input.Email,
		Gender: input.Gender,
		Status: domain.ClientStatusActive,
	}
	if candidate != nil {
		// The directory's view of identity wins on a match, even when its
		// email differs from the submitted one.
		client.Name = candidate.Name
		client.Email = candidate.Email
		client.Status = domain.ClientStatusExists
	}

	if err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// A concurrent registration won the race between the uniqueness
			// read and this write; the store's unique index is authoritative.
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, err
	}

	s.publish(ctx, events.EventClientRegistered, client.ID, events.ClientRegisteredPayload{
		Email:      client.Email,
		Status:     client.Status,
		Reconciled: candidate != nil,
	})
	s.logger.Info("client registered",
		zap.Int64("client_id", client.ID),
		zap.String("status", string(client.Status)),
	)
	return client, nil
}

// Update overwrites name, email and gender of an existing client. Status is
// derived at registration time and never touched here. Email uniqueness is not
// re-checked by the workflow; the store's unique index still applies.
func (s *ClientService) Update(ctx context.Context, id int64, input ClientInput) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("client", map[string]any{"id": id})
		}
		return nil, err
	}

	client.Name = input.Name
	client.Email = input.Email
	client.Gender = input.Gender

	if err := s.clients.Update(ctx, client); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewDuplicateEmail()
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound("client", map[string]any{"id": id})
		}
		return nil, err
	}

	s.publish(ctx, events.EventClientUpdated, client.ID, events.ClientUpdatedPayload{Email: client.Email})
	return client, nil
}

// Search returns all clients whose name or email contains the respective
// filter. Blank filters match nothing on their axis; with both blank every
// record is returned.
func (s *ClientService) Search(ctx context.Context, name, email string) ([]domain.Client, error) {
	return s.clients.Search(ctx, name, email)
}

// Delete permanently removes a client.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("client", map[string]any{"id": id})
		}
		return err
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("client", map[string]any{"id": id})
		}
		return err
	}

	s.publish(ctx, events.EventClientDeleted, id, events.ClientDeletedPayload{Email: client.Email})
	return nil
}

func (s *ClientService) publish(ctx context.Context, eventType events.EventType, clientID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ClientID:  clientID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
