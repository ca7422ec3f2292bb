package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/client-service/internal/directory"
	"github.com/spec-kit/client-service/internal/domain"
	"github.com/spec-kit/client-service/internal/events"
	"github.com/spec-kit/client-service/internal/repository"
	apperrors "github.com/spec-kit/client-service/pkg/util"
)

// stubDirectory returns a canned lookup result.
type stubDirectory struct {
	candidate *directory.Candidate
	err       error
	calls     int
}

func (d *stubDirectory) Lookup(ctx context.Context, name, email string) (*directory.Candidate, error) {
	d.calls++
	return d.candidate, d.err
}

// spyRepository counts writes on top of a real repository.
type spyRepository struct {
	repository.ClientRepository
	createCalls int
	updateCalls int
}

func (r *spyRepository) Create(ctx context.Context, client *domain.Client) error {
	r.createCalls++
	return r.ClientRepository.Create(ctx, client)
}

func (r *spyRepository) Update(ctx context.Context, client *domain.Client) error {
	r.updateCalls++
	return r.ClientRepository.Update(ctx, client)
}

type ClientServiceSuite struct {
	suite.Suite
	repo       *spyRepository
	dir        *stubDirectory
	dispatcher events.Dispatcher
	svc        *ClientService
	ctx        context.Context
}

func (s *ClientServiceSuite) SetupTest() {
	s.repo = &spyRepository{ClientRepository: repository.NewMemoryClientRepository()}
	s.dir = &stubDirectory{}
	s.dispatcher = events.NewInMemoryDispatcher()
	s.svc = NewClientService(ClientDependencies{
		ClientRepo: s.repo,
		Directory:  s.dir,
		Dispatcher: s.dispatcher,
	})
	s.ctx = context.Background()
}

func TestClientServiceSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) input() ClientInput {
	return ClientInput{Name: "John Doe", Email: "john@x.com", Gender: domain.GenderMale}
}

func (s *ClientServiceSuite) domainCode(err error) string {
	var domainErr *apperrors.DomainError
	s.Require().True(errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.Code
}

func (s *ClientServiceSuite) TestRegisterNewClientWithoutDirectoryMatch() {
	client, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)

	s.NotZero(client.ID)
	s.Equal("John Doe", client.Name)
	s.Equal("john@x.com", client.Email)
	s.Equal(domain.GenderMale, client.Gender)
	s.Equal(domain.ClientStatusActive, client.Status)

	stored, err := s.repo.GetByEmail(s.ctx, "john@x.com")
	s.Require().NoError(err)
	s.Equal(client.ID, stored.ID)
	s.Equal(1, s.dir.calls)
}

func (s *ClientServiceSuite) TestRegisterWithDirectoryMatchStoresCandidateIdentity() {
	// The directory match may carry a different email than the submitted one;
	// the candidate's fields win.
	s.dir.candidate = &directory.Candidate{Name: "Jonathan Doe", Email: "jonathan@ext.com"}

	client, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)

	s.Equal("Jonathan Doe", client.Name)
	s.Equal("jonathan@ext.com", client.Email)
	s.Equal(domain.GenderMale, client.Gender)
	s.Equal(domain.ClientStatusExists, client.Status)

	_, err = s.repo.GetByEmail(s.ctx, "jonathan@ext.com")
	s.Require().NoError(err)
	_, err = s.repo.GetByEmail(s.ctx, "john@x.com")
	s.Require().ErrorIs(err, repository.ErrNotFound)
}

func (s *ClientServiceSuite) TestRegisterDuplicateEmailShortCircuits() {
	_, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)
	s.repo.createCalls = 0
	s.dir.calls = 0

	_, err = s.svc.Register(s.ctx, s.input())
	s.Equal("EMAIL_ALREADY_REGISTERED", s.domainCode(err))
	s.Zero(s.repo.createCalls, "save must not run for a duplicate email")
	s.Zero(s.dir.calls, "directory must not be consulted for a duplicate email")
}

func (s *ClientServiceSuite) TestRegisterDirectoryUnavailable() {
	s.dir.err = directory.ErrUnavailable

	_, err := s.svc.Register(s.ctx, s.input())
	s.Equal("DEPENDENCY_UNAVAILABLE", s.domainCode(err))
	s.Zero(s.repo.createCalls)
}

func (s *ClientServiceSuite) TestRegisterDuplicateFromStoreConstraint() {
	// The store's unique violation is the authoritative duplicate signal when
	// a concurrent registration wins the read-then-write race.
	s.Require().NoError(s.repo.ClientRepository.Create(s.ctx, &domain.Client{
		Name: "Racer", Email: "jonathan@ext.com", Gender: domain.GenderMale, Status: domain.ClientStatusActive,
	}))
	s.dir.candidate = &directory.Candidate{Name: "Jonathan Doe", Email: "jonathan@ext.com"}

	_, err := s.svc.Register(s.ctx, s.input())
	s.Equal("EMAIL_ALREADY_REGISTERED", s.domainCode(err))
}

func (s *ClientServiceSuite) TestRegisterPublishesEvent() {
	var got events.Event
	s.dispatcher.Subscribe(events.EventClientRegistered, func(ctx context.Context, event events.Event) error {
		got = event
		return nil
	})

	client, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)

	s.Equal(events.EventClientRegistered, got.Type)
	s.Equal(client.ID, got.ClientID)
	payload, ok := got.Payload.(events.ClientRegisteredPayload)
	s.Require().True(ok)
	s.Equal(domain.ClientStatusActive, payload.Status)
	s.False(payload.Reconciled)
}

func (s *ClientServiceSuite) TestUpdateOverwritesFieldsButNotStatus() {
	s.dir.candidate = &directory.Candidate{Name: "Jonathan Doe", Email: "jonathan@ext.com"}
	created, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)
	s.Require().Equal(domain.ClientStatusExists, created.Status)

	updated, err := s.svc.Update(s.ctx, created.ID, ClientInput{
		Name: "New Name", Email: "new@x.com", Gender: domain.GenderFemale,
	})
	s.Require().NoError(err)

	s.Equal("New Name", updated.Name)
	s.Equal("new@x.com", updated.Email)
	s.Equal(domain.GenderFemale, updated.Gender)
	s.Equal(domain.ClientStatusExists, updated.Status, "update must never change status")
}

func (s *ClientServiceSuite) TestUpdateUnknownID() {
	_, err := s.svc.Update(s.ctx, 42, s.input())
	s.Equal("NOT_FOUND", s.domainCode(err))
	s.Zero(s.repo.updateCalls)
}

func (s *ClientServiceSuite) TestSearchDelegatesToStore() {
	_, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)
	_, err = s.svc.Register(s.ctx, ClientInput{Name: "Jane Roe", Email: "jane@other.org", Gender: domain.GenderFemale})
	s.Require().NoError(err)

	clients, err := s.svc.Search(s.ctx, "John", "")
	s.Require().NoError(err)
	s.Require().Len(clients, 1)
	s.Equal("John Doe", clients[0].Name)
}

func (s *ClientServiceSuite) TestDelete() {
	created, err := s.svc.Register(s.ctx, s.input())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, created.ID))

	_, err = s.repo.GetByID(s.ctx, created.ID)
	s.Require().ErrorIs(err, repository.ErrNotFound)

	err = s.svc.Delete(s.ctx, created.ID)
	s.Equal("NOT_FOUND", s.domainCode(err))
}
