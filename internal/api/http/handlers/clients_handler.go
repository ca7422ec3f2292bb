package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/client-service/internal/api/dto"
	"github.com/spec-kit/client-service/internal/domain"
	"github.com/spec-kit/client-service/internal/service"
	apperrors "github.com/spec-kit/client-service/pkg/util"
)

// ClientsHandler manages the client CRUD endpoints.
type ClientsHandler struct {
	service *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{service: clientService}
}

// Register POST /api/v1/clients.
func (h *ClientsHandler) Register(c *fiber.Ctx) error {
	req, err := parseClientRequest(c)
	if err != nil {
		return err
	}

	client, err := h.service.Register(c.UserContext(), clientInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewClientResponse(client))
}

// Update PUT /api/v1/clients/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	id, err := parseClientID(c)
	if err != nil {
		return err
	}
	req, err := parseClientRequest(c)
	if err != nil {
		return err
	}

	client, err := h.service.Update(c.UserContext(), id, clientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewClientResponse(client))
}

// Search GET /api/v1/clients.
func (h *ClientsHandler) Search(c *fiber.Ctx) error {
	name, err := optionalFilter(c, "name")
	if err != nil {
		return err
	}
	email, err := optionalFilter(c, "email")
	if err != nil {
		return err
	}

	clients, err := h.service.Search(c.UserContext(), name, email)
	if err != nil {
		return err
	}

	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, dto.NewClientResponse(&clients[i]))
	}
	return c.JSON(items)
}

// Delete DELETE /api/v1/clients/:id.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseClientID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseClientRequest(c *fiber.Ctx) (dto.ClientRequest, error) {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.ValidateClientRequest(req); details != nil {
		return req, apperrors.NewValidationError("validation failed", toErrorDetails(details))
	}
	return req, nil
}

func parseClientID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid client id", nil)
	}
	return id, nil
}

// optionalFilter returns the query filter value, rejecting filters that are
// provided but blank. An absent filter is returned as the empty string.
func optionalFilter(c *fiber.Ctx, key string) (string, error) {
	if !c.Context().QueryArgs().Has(key) {
		return "", nil
	}
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return "", apperrors.NewValidationError("validation failed", map[string]any{
			key: []string{key + " must not be blank"},
		})
	}
	return value, nil
}

func clientInput(req dto.ClientRequest) service.ClientInput {
	return service.ClientInput{
		Name:   req.Name,
		Email:  req.Email,
		Gender: domain.Gender(req.Gender),
	}
}

func toErrorDetails(details map[string][]string) map[string]any {
	out := make(map[string]any, len(details))
	for field, messages := range details {
		out[field] = messages
	}
	return out
}
