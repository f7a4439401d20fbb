package repositories

import (
	"context"
	"time"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pawnRepository implements PawnRepository interface
type pawnRepository struct {
	db *gorm.DB
}

// NewPawnRepository creates a new pawn repository
func NewPawnRepository(db *gorm.DB) PawnRepository {
	return &pawnRepository{db: db}
}

// Create creates a new pawn
func (r *pawnRepository) Create(ctx context.Context, pawn *models.Pawn) error {
	return r.db.WithContext(ctx).Create(pawn).Error
}

// GetByID gets a pawn by ID with its client
func (r *pawnRepository) GetByID(ctx context.Context, id uint) (*models.Pawn, error) {
	var pawn models.Pawn
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&pawn, id).Error
	if err != nil {
		return nil, err
	}
	return &pawn, nil
}

// GetByIDForUpdate loads a pawn under FOR UPDATE. Serializes concurrent
// lifecycle operations on the same pawn; only meaningful inside a transaction.
// sqlite has no FOR UPDATE (writers already serialize on the database), so
// the clause is skipped there.
func (r *pawnRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Pawn, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var pawn models.Pawn
	if err := q.First(&pawn, id).Error; err != nil {
		return nil, err
	}
	return &pawn, nil
}

// Update updates a pawn
func (r *pawnRepository) Update(ctx context.Context, pawn *models.Pawn) error {
	return r.db.WithContext(ctx).Save(pawn).Error
}

// List lists pawns ordered by pawn date descending, with pagination
func (r *pawnRepository) List(ctx context.Context, offset, limit int) ([]*models.Pawn, int64, error) {
	var pawns []*models.Pawn
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Pawn{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Client").
		Order("pawn_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&pawns).Error

	return pawns, total, err
}

// ListByClient lists a client's pawns, newest first
func (r *pawnRepository) ListByClient(ctx context.Context, clientID uint) ([]*models.Pawn, error) {
	var pawns []*models.Pawn
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("pawn_date DESC, id DESC").
		Find(&pawns).Error
	return pawns, err
}

// ListRecent lists the most recently registered pawns
func (r *pawnRepository) ListRecent(ctx context.Context, limit int) ([]*models.Pawn, error) {
	var pawns []*models.Pawn
	err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&pawns).Error
	return pawns, err
}

// CountByStatus counts pawns grouped by status
func (r *pawnRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Pawn{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

// MarkOverdue flips active pawns whose due date has passed to overdue and
// returns how many rows changed.
func (r *pawnRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Pawn{}).
		Where("status = ? AND due_date < ?", domain.StatusActive, before).
		Update("status", domain.StatusOverdue)
	return result.RowsAffected, result.Error
}

// movementRepository implements MovementRepository interface
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new cash movement repository
func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

// Create appends a new cash movement
func (r *movementRepository) Create(ctx context.Context, movement *models.CashMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// GetByPawnID gets a pawn's movements, newest first
func (r *movementRepository) GetByPawnID(ctx context.Context, pawnID uint) ([]*models.CashMovement, error) {
	var movements []*models.CashMovement
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("pawn_id = ?", pawnID).
		Order("created_at DESC, id DESC").
		Find(&movements).Error
	return movements, err
}

// ListRecent lists the most recent movements across all pawns
func (r *movementRepository) ListRecent(ctx context.Context, limit int) ([]*models.CashMovement, error) {
	var movements []*models.CashMovement
	err := r.db.WithContext(ctx).
		Preload("Pawn").
		Preload("Pawn.Client").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}
