package handlers

import (
	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/core/services"
	"luna-empenos/internal/pkg/pagination"
	"luna-empenos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PawnHandler handles pawn lifecycle endpoints
type PawnHandler struct {
	pawnService     *services.PawnService
	movementService *services.MovementService
}

// NewPawnHandler creates a new pawn handler
func NewPawnHandler(pawnService *services.PawnService, movementService *services.MovementService) *PawnHandler {
	return &PawnHandler{
		pawnService:     pawnService,
		movementService: movementService,
	}
}

// IntakeClientRequest is the client half of an intake request
type IntakeClientRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id"`
	Address    string `json:"address,omitempty"`
}

// IntakePawnRequest is the pawn half of an intake request
type IntakePawnRequest struct {
	Category     string          `json:"category"`
	BrandModel   string          `json:"brand_model"`
	Description  string          `json:"description,omitempty"`
	SerialWeight string          `json:"serial_weight,omitempty"`
	Observations string          `json:"observations,omitempty"`
	Appraisal    decimal.Decimal `json:"appraisal"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestPct  decimal.Decimal `json:"interest_pct,omitempty"`
	PawnDate     string          `json:"pawn_date"`
	DueDate      string          `json:"due_date"`
}

// IntakeRequest represents a new-pawn intake request
type IntakeRequest struct {
	Client IntakeClientRequest `json:"client"`
	Pawn   IntakePawnRequest   `json:"pawn"`
}

// Intake registers a new pawn, reusing or creating the client
// @Summary New pawn intake
// @Description Resolve the client by national ID (create if absent) and register the pawn as active
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IntakeRequest true "Client and pawn data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /pawns [post]
func (h *PawnHandler) Intake(c *fiber.Ctx) error {
	var req IntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Client.NationalID == "" {
		return response.BadRequest(c, "Client national ID is required")
	}
	if req.Client.FirstName == "" || req.Client.LastName == "" {
		return response.BadRequest(c, "Client name is required")
	}

	pawnDate, err := parseDate(req.Pawn.PawnDate)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn_date, use YYYY-MM-DD")
	}
	dueDate, err := parseDate(req.Pawn.DueDate)
	if err != nil {
		return response.BadRequest(c, "Invalid due_date, use YYYY-MM-DD")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.IntakeInput{
		Client: services.IntakeClientInput{
			FirstName:  req.Client.FirstName,
			LastName:   req.Client.LastName,
			Phone:      req.Client.Phone,
			NationalID: req.Client.NationalID,
			Address:    req.Client.Address,
		},
		Pawn: services.IntakePawnInput{
			Category:     req.Pawn.Category,
			BrandModel:   req.Pawn.BrandModel,
			Description:  req.Pawn.Description,
			SerialWeight: req.Pawn.SerialWeight,
			Observations: req.Pawn.Observations,
			Appraisal:    req.Pawn.Appraisal,
			LoanAmount:   req.Pawn.LoanAmount,
			InterestPct:  req.Pawn.InterestPct,
			PawnDate:     pawnDate,
			DueDate:      dueDate,
		},
	}

	pawn, err := h.pawnService.Intake(c.Context(), input, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to register pawn")
	}

	return response.Created(c, "Pawn registered successfully", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// List lists pawns
// @Summary List pawns
// @Description List all pawns ordered by pawn date descending
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /pawns [get]
func (h *PawnHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.pawnService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return mapDomainError(c, err, "Failed to list pawns")
	}

	responses := make([]*models.PawnResponse, 0, len(result.Pawns))
	for _, p := range result.Pawns {
		responses = append(responses, p.ToResponse())
	}

	return response.Success(c, "Pawns retrieved successfully",
		pagination.NewResponse(responses, params, result.Total))
}

// Get gets a pawn by ID
// @Summary Get pawn
// @Description Get a pawn with its client
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pawns/{id} [get]
func (h *PawnHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	pawn, err := h.pawnService.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err, "Failed to get pawn")
	}

	return response.Success(c, "Pawn retrieved successfully", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// RenewRequest represents a renewal request
type RenewRequest struct {
	ExtensionDays int `json:"extension_days,omitempty"`
}

// Renew charges interest and extends the due date
// @Summary Renew pawn
// @Description Charge one month of interest and extend the due date (default 30 days)
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Param body body RenewRequest false "Extension days"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pawns/{id}/renew [post]
func (h *PawnHandler) Renew(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	var req RenewRequest
	// Empty body is fine, the default extension applies
	_ = c.BodyParser(&req)

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pawn, err := h.pawnService.Renew(c.Context(), id, req.ExtensionDays, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to renew pawn")
	}

	return response.Success(c, "Pawn renewed successfully", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// ReappraiseRequest represents a re-appraisal request
type ReappraiseRequest struct {
	NewLoanAmount decimal.Decimal `json:"new_loan_amount"`
	NewAppraisal  decimal.Decimal `json:"new_appraisal"`
	NewInterest   decimal.Decimal `json:"new_interest"`
}

// Reappraise revalues collateral and adjusts the principal
// @Summary Re-appraise pawn
// @Description Adjust principal, appraisal and rate; any principal increase is disbursed as cash out
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Param body body ReappraiseRequest true "New values"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pawns/{id}/reappraise [post]
func (h *PawnHandler) Reappraise(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	var req ReappraiseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pawn, err := h.pawnService.Reappraise(c.Context(), id, &services.ReappraiseInput{
		NewLoanAmount: req.NewLoanAmount,
		NewAppraisal:  req.NewAppraisal,
		NewInterest:   req.NewInterest,
	}, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to re-appraise pawn")
	}

	return response.Success(c, "Pawn re-appraised successfully", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// Redeem settles the pawn and returns the item
// @Summary Redeem pawn
// @Description Collect principal plus interest and release the item
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pawns/{id}/redeem [post]
func (h *PawnHandler) Redeem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pawn, err := h.pawnService.Redeem(c.Context(), id, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to redeem pawn")
	}

	return response.Success(c, "Pawn redeemed successfully", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// SendToAuction seizes the item for auction
// @Summary Send pawn to auction
// @Description Mark the item as seized and available for sale
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pawns/{id}/auction [post]
func (h *PawnHandler) SendToAuction(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pawn, err := h.pawnService.SendToAuction(c.Context(), id, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to send pawn to auction")
	}

	return response.Success(c, "Pawn sent to auction", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// SellRequest represents an auction sale request
type SellRequest struct {
	SalePrice decimal.Decimal `json:"sale_price"`
}

// Sell sells an auctioned item
// @Summary Sell auctioned pawn
// @Description Sell an item in auction at the given price; fails if the pawn is not in auction
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Param body body SellRequest true "Sale price"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /pawns/{id}/sell [post]
func (h *PawnHandler) Sell(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	var req SellRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pawn, err := h.pawnService.SellFromAuction(c.Context(), id, req.SalePrice, userID)
	if err != nil {
		return mapDomainError(c, err, "Failed to sell pawn")
	}

	return response.Success(c, "Pawn sold successfully", fiber.Map{
		"pawn": pawn.ToResponse(),
	})
}

// Movements returns a pawn's cash movement history
// @Summary Pawn movements
// @Description List a pawn's cash movements, newest first
// @Tags Pawns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pawn ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pawns/{id}/movements [get]
func (h *PawnHandler) Movements(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pawn ID")
	}

	movements, err := h.movementService.ListByPawn(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err, "Failed to list movements")
	}

	return response.Success(c, "Movements retrieved successfully", fiber.Map{
		"movements": movements,
	})
}
