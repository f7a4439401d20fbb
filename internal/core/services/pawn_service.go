package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/core/domain"
	"luna-empenos/internal/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pawn service errors
var (
	ErrPawnNotFound     = fmt.Errorf("pawn: %w", domain.ErrNotFound)
	ErrClientNotFound   = fmt.Errorf("client: %w", domain.ErrNotFound)
	ErrPawnNotInAuction = fmt.Errorf("pawn is not in auction: %w", domain.ErrPreconditionFailed)
	ErrInvalidAmount    = fmt.Errorf("amount must be greater than zero: %w", domain.ErrValidation)
	ErrInvalidDates     = fmt.Errorf("pawn date and due date are required: %w", domain.ErrValidation)
	ErrMissingClientID  = fmt.Errorf("client national id is required: %w", domain.ErrValidation)
)

// PawnService is the lifecycle engine. Every transition that moves money runs
// the pawn update and the cash movement insert in one transaction, with the
// pawn row locked, so the ledger can never drift from the pawn state.
type PawnService struct {
	db *gorm.DB
}

// NewPawnService creates a new pawn service
func NewPawnService(db *gorm.DB) *PawnService {
	return &PawnService{db: db}
}

// wrapStorage tags unexpected persistence failures so handlers report them as
// a storage problem instead of a business rejection.
func wrapStorage(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// loadForUpdate fetches the pawn under a row lock, translating a missing row
// to ErrPawnNotFound.
func loadForUpdate(ctx context.Context, tx *gorm.DB, pawnID uint) (*models.Pawn, error) {
	pawn, err := repositories.NewPawnRepository(tx).GetByIDForUpdate(ctx, pawnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPawnNotFound
		}
		return nil, wrapStorage(err)
	}
	return pawn, nil
}

// ============================================================
// Intake
// ============================================================

// IntakeClientInput is the client half of an intake request.
type IntakeClientInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id"`
	Address    string `json:"address,omitempty"`
}

// IntakePawnInput is the pawn half of an intake request.
type IntakePawnInput struct {
	Category     string          `json:"category"`
	BrandModel   string          `json:"brand_model"`
	Description  string          `json:"description,omitempty"`
	SerialWeight string          `json:"serial_weight,omitempty"`
	Observations string          `json:"observations,omitempty"`
	Appraisal    decimal.Decimal `json:"appraisal"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestPct  decimal.Decimal `json:"interest_pct,omitempty"`
	PawnDate     time.Time       `json:"pawn_date"`
	DueDate      time.Time       `json:"due_date"`
}

// IntakeInput represents a new-pawn intake request
type IntakeInput struct {
	Client IntakeClientInput `json:"client"`
	Pawn   IntakePawnInput   `json:"pawn"`
}

// Intake resolves the client by national ID (reusing an existing record,
// creating one otherwise) and registers the pawn as Active, all inside one
// transaction. A failed pawn insert therefore rolls back a freshly created
// client instead of leaving an orphan.
func (s *PawnService) Intake(ctx context.Context, input *IntakeInput, userID uint) (*models.Pawn, error) {
	nationalID := strings.TrimSpace(input.Client.NationalID)
	if nationalID == "" {
		return nil, ErrMissingClientID
	}
	if !money.IsPositive(input.Pawn.Appraisal) || !money.IsPositive(input.Pawn.LoanAmount) {
		return nil, ErrInvalidAmount
	}
	if input.Pawn.PawnDate.IsZero() || input.Pawn.DueDate.IsZero() {
		return nil, ErrInvalidDates
	}

	rate := input.Pawn.InterestPct
	if rate.IsZero() {
		rate = decimal.NewFromFloat(10.0)
	}

	var pawn *models.Pawn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		clientRepo := repositories.NewClientRepository(tx)

		client, err := clientRepo.GetByNationalID(ctx, nationalID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return wrapStorage(err)
			}
			client = &models.Client{
				FirstName:  input.Client.FirstName,
				LastName:   input.Client.LastName,
				Phone:      input.Client.Phone,
				NationalID: nationalID,
				Address:    input.Client.Address,
			}
			if err := clientRepo.Create(ctx, client); err != nil {
				return wrapStorage(err)
			}
		}

		pawn = &models.Pawn{
			ClientID:     client.ID,
			Category:     input.Pawn.Category,
			BrandModel:   input.Pawn.BrandModel,
			Description:  input.Pawn.Description,
			SerialWeight: input.Pawn.SerialWeight,
			Observations: input.Pawn.Observations,
			Appraisal:    input.Pawn.Appraisal.Round(2),
			LoanAmount:   input.Pawn.LoanAmount.Round(2),
			InterestPct:  rate,
			PawnDate:     input.Pawn.PawnDate,
			DueDate:      input.Pawn.DueDate,
			// Forced: a caller-supplied status is ignored.
			Status: domain.StatusActive,
		}
		if err := repositories.NewPawnRepository(tx).Create(ctx, pawn); err != nil {
			return wrapStorage(err)
		}

		pawn.Client = client
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pawn, nil
}

// ============================================================
// Lifecycle transitions
// ============================================================

// Renew charges one month of interest and extends the due date. An overdue
// pawn revives to Active.
func (s *PawnService) Renew(ctx context.Context, pawnID uint, extensionDays int, userID uint) (*models.Pawn, error) {
	if extensionDays <= 0 {
		extensionDays = domain.DefaultExtensionDays
	}

	var pawn *models.Pawn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		pawn, err = loadForUpdate(ctx, tx, pawnID)
		if err != nil {
			return err
		}

		fee := money.Interest(pawn.LoanAmount, pawn.InterestPct)

		pawn.DueDate = pawn.DueDate.AddDate(0, 0, extensionDays)
		pawn.Status = domain.StatusActive
		if err := repositories.NewPawnRepository(tx).Update(ctx, pawn); err != nil {
			return wrapStorage(err)
		}

		movement := &models.CashMovement{
			PawnID: pawn.ID,
			UserID: userID,
			Type:   domain.MovementRenewal,
			Amount: fee,
			Note:   fmt.Sprintf("Refrendo +%d días", extensionDays),
		}
		if err := repositories.NewMovementRepository(tx).Create(ctx, movement); err != nil {
			return wrapStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pawn, nil
}

// ReappraiseInput represents a re-appraisal request
type ReappraiseInput struct {
	NewLoanAmount decimal.Decimal `json:"new_loan_amount"`
	NewAppraisal  decimal.Decimal `json:"new_appraisal"`
	NewInterest   decimal.Decimal `json:"new_interest"`
}

// Reappraise revalues the collateral and adjusts the principal. When the new
// principal exceeds the old one the difference is handed to the client, so a
// negative Reevaluo movement is recorded; a lowered or unchanged principal
// moves no cash. The due date resets to 30 days from today.
func (s *PawnService) Reappraise(ctx context.Context, pawnID uint, input *ReappraiseInput, userID uint) (*models.Pawn, error) {
	if !money.IsPositive(input.NewLoanAmount) || !money.IsPositive(input.NewAppraisal) || !money.IsPositive(input.NewInterest) {
		return nil, ErrInvalidAmount
	}

	var pawn *models.Pawn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		pawn, err = loadForUpdate(ctx, tx, pawnID)
		if err != nil {
			return err
		}

		delta := input.NewLoanAmount.Sub(pawn.LoanAmount).Round(2)

		pawn.LoanAmount = input.NewLoanAmount.Round(2)
		pawn.Appraisal = input.NewAppraisal.Round(2)
		pawn.InterestPct = input.NewInterest
		pawn.DueDate = today().AddDate(0, 0, domain.DefaultExtensionDays)
		pawn.Status = domain.StatusActive
		if err := repositories.NewPawnRepository(tx).Update(ctx, pawn); err != nil {
			return wrapStorage(err)
		}

		// Cash leaves the register only when the loan grew.
		if delta.GreaterThan(decimal.Zero) {
			movement := &models.CashMovement{
				PawnID: pawn.ID,
				UserID: userID,
				Type:   domain.MovementReappraisal,
				Amount: delta.Neg(),
				Note:   "Reevaluo: aumento de préstamo",
			}
			if err := repositories.NewMovementRepository(tx).Create(ctx, movement); err != nil {
				return wrapStorage(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pawn, nil
}

// Redeem settles principal plus one month of interest and returns the item.
// Terminal state.
func (s *PawnService) Redeem(ctx context.Context, pawnID uint, userID uint) (*models.Pawn, error) {
	var pawn *models.Pawn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		pawn, err = loadForUpdate(ctx, tx, pawnID)
		if err != nil {
			return err
		}

		total := money.RedemptionTotal(pawn.LoanAmount, pawn.InterestPct)

		pawn.Status = domain.StatusRedeemed
		if err := repositories.NewPawnRepository(tx).Update(ctx, pawn); err != nil {
			return wrapStorage(err)
		}

		movement := &models.CashMovement{
			PawnID: pawn.ID,
			UserID: userID,
			Type:   domain.MovementRedemption,
			Amount: total,
			Note:   "Liquidación total (Desempeño)",
		}
		if err := repositories.NewMovementRepository(tx).Create(ctx, movement); err != nil {
			return wrapStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pawn, nil
}

// SendToAuction seizes the item. No money moves until the sale.
func (s *PawnService) SendToAuction(ctx context.Context, pawnID uint, userID uint) (*models.Pawn, error) {
	var pawn *models.Pawn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		pawn, err = loadForUpdate(ctx, tx, pawnID)
		if err != nil {
			return err
		}

		pawn.Status = domain.StatusInAuction
		if err := repositories.NewPawnRepository(tx).Update(ctx, pawn); err != nil {
			return wrapStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pawn, nil
}

// SellFromAuction sells a seized item. The only guarded transition: selling a
// pawn that is not in auction would misrepresent inventory, so anything other
// than Rematado is rejected before any write.
func (s *PawnService) SellFromAuction(ctx context.Context, pawnID uint, salePrice decimal.Decimal, userID uint) (*models.Pawn, error) {
	if !money.IsPositive(salePrice) {
		return nil, ErrInvalidAmount
	}

	var pawn *models.Pawn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		pawn, err = loadForUpdate(ctx, tx, pawnID)
		if err != nil {
			return err
		}

		if pawn.Status != domain.StatusInAuction {
			return ErrPawnNotInAuction
		}

		pawn.Status = domain.StatusSold
		if err := repositories.NewPawnRepository(tx).Update(ctx, pawn); err != nil {
			return wrapStorage(err)
		}

		movement := &models.CashMovement{
			PawnID: pawn.ID,
			UserID: userID,
			Type:   domain.MovementAuctionSale,
			Amount: salePrice.Round(2),
			Note:   "Venta de artículo de remate",
		}
		if err := repositories.NewMovementRepository(tx).Create(ctx, movement); err != nil {
			return wrapStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pawn, nil
}

// ============================================================
// Read accessors
// ============================================================

// GetByID gets a pawn by ID
func (s *PawnService) GetByID(ctx context.Context, id uint) (*models.Pawn, error) {
	pawn, err := repositories.NewPawnRepository(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPawnNotFound
		}
		return nil, wrapStorage(err)
	}
	return pawn, nil
}

// ListOutput represents list output
type ListOutput struct {
	Pawns []*models.Pawn `json:"pawns"`
	Total int64          `json:"total"`
}

// List lists pawns ordered by pawn date descending
func (s *PawnService) List(ctx context.Context, offset, limit int) (*ListOutput, error) {
	pawns, total, err := repositories.NewPawnRepository(s.db).List(ctx, offset, limit)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &ListOutput{Pawns: pawns, Total: total}, nil
}

// ListByClient lists a client's pawns
func (s *PawnService) ListByClient(ctx context.Context, clientID uint) ([]*models.Pawn, error) {
	pawns, err := repositories.NewPawnRepository(s.db).ListByClient(ctx, clientID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return pawns, nil
}
