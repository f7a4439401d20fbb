package services

import (
	"context"
	"errors"
	"fmt"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Movement service errors
var (
	ErrInvalidMovementType = fmt.Errorf("unknown movement type: %w", domain.ErrValidation)
	ErrZeroMovementAmount  = fmt.Errorf("movement amount must not be zero: %w", domain.ErrValidation)
)

// MovementService records ad-hoc entries in the append-only cash log, e.g. a
// capital payment taken at the counter. Lifecycle transitions write their own
// movements inside the engine; this service never updates or deletes.
type MovementService struct {
	movementRepo repositories.MovementRepository
	pawnRepo     repositories.PawnRepository
}

// NewMovementService creates a new movement service
func NewMovementService(movementRepo repositories.MovementRepository, pawnRepo repositories.PawnRepository) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		pawnRepo:     pawnRepo,
	}
}

// RecordMovementInput represents a manual cash movement
type RecordMovementInput struct {
	PawnID uint                `json:"pawn_id"`
	Type   domain.MovementType `json:"type"`
	Amount decimal.Decimal     `json:"amount"`
	Note   string              `json:"note,omitempty"`
}

// Record appends a movement attributed to the acting user.
func (s *MovementService) Record(ctx context.Context, input *RecordMovementInput, userID uint) (*models.CashMovement, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidMovementType
	}
	if input.Amount.IsZero() {
		return nil, ErrZeroMovementAmount
	}

	if _, err := s.pawnRepo.GetByID(ctx, input.PawnID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPawnNotFound
		}
		return nil, wrapStorage(err)
	}

	movement := &models.CashMovement{
		PawnID: input.PawnID,
		UserID: userID,
		Type:   input.Type,
		Amount: input.Amount.Round(2),
		Note:   input.Note,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, wrapStorage(err)
	}
	return movement, nil
}

// ListByPawn returns a pawn's movement history, newest first.
func (s *MovementService) ListByPawn(ctx context.Context, pawnID uint) ([]*models.CashMovement, error) {
	if _, err := s.pawnRepo.GetByID(ctx, pawnID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPawnNotFound
		}
		return nil, wrapStorage(err)
	}

	movements, err := s.movementRepo.GetByPawnID(ctx, pawnID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return movements, nil
}
