package handlers

import (
	"luna-empenos/internal/core/services"
	"luna-empenos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles client registry endpoints
type ClientHandler struct {
	clientService *services.ClientService
	pawnService   *services.PawnService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *services.ClientService, pawnService *services.PawnService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		pawnService:   pawnService,
	}
}

// Search searches clients
// @Summary Search clients
// @Description Case-insensitive substring search over name, surname, national ID and phone
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search text"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /clients/search [get]
func (h *ClientHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return response.BadRequest(c, "Query parameter 'q' is required")
	}

	clients, err := h.clientService.Search(c.Context(), query)
	if err != nil {
		return mapDomainError(c, err, "Failed to search clients")
	}

	return response.Success(c, "Clients retrieved successfully", fiber.Map{
		"clients": clients,
	})
}

// Get gets a client with their pawns
// @Summary Get client
// @Description Get a client and their pawn history
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid client ID")
	}

	client, err := h.clientService.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err, "Failed to get client")
	}

	pawns, err := h.pawnService.ListByClient(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err, "Failed to list client pawns")
	}

	return response.Success(c, "Client retrieved successfully", fiber.Map{
		"client": client,
		"pawns":  pawns,
	})
}
