package handlers

import (
	"luna-empenos/internal/core/domain"
	"luna-empenos/internal/core/services"
	"luna-empenos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// MovementHandler handles ad-hoc cash movement endpoints
type MovementHandler struct {
	movementService *services.MovementService
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(movementService *services.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// RecordMovementRequest represents a manual movement request
type RecordMovementRequest struct {
	PawnID uint            `json:"pawn_id"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// Record appends a cash movement
// @Summary Record cash movement
// @Description Append an ad-hoc movement (e.g. a capital payment) to the register log
// @Tags Movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordMovementRequest true "Movement data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var req RecordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.PawnID == 0 {
		return response.BadRequest(c, "Pawn ID is required")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	movement, err := h.movementService.Record(c.Context(), &services.RecordMovementInput{
		PawnID: req.PawnID,
		Type:   domain.MovementType(req.Type),
		Amount: req.Amount,
		Note:   req.Note,
	}, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to record movement")
	}

	return response.Created(c, "Movement recorded successfully", fiber.Map{
		"movement": movement,
	})
}
