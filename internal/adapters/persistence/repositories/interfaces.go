package repositories

import (
	"context"
	"time"

	"luna-empenos/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// ClientRepository defines client repository interface
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Client, error)
	Search(ctx context.Context, query string) ([]*models.Client, error)
	Count(ctx context.Context) (int64, error)
}

// PawnRepository defines pawn repository interface
type PawnRepository interface {
	Create(ctx context.Context, pawn *models.Pawn) error
	GetByID(ctx context.Context, id uint) (*models.Pawn, error)
	// GetByIDForUpdate loads a pawn under a row lock; must run inside a
	// transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Pawn, error)
	Update(ctx context.Context, pawn *models.Pawn) error
	List(ctx context.Context, offset, limit int) ([]*models.Pawn, int64, error)
	ListByClient(ctx context.Context, clientID uint) ([]*models.Pawn, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Pawn, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}

// MovementRepository defines cash movement repository interface.
// Append-only: there are no update or delete operations.
type MovementRepository interface {
	Create(ctx context.Context, movement *models.CashMovement) error
	GetByPawnID(ctx context.Context, pawnID uint) ([]*models.CashMovement, error)
	ListRecent(ctx context.Context, limit int) ([]*models.CashMovement, error)
}
