package services

import (
	"context"
	"testing"
	"time"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pawnDueIn(t *testing.T, svc *PawnService, userID uint, nationalID string, days int) *models.Pawn {
	t.Helper()
	pawn, err := svc.Intake(context.Background(), &IntakeInput{
		Client: IntakeClientInput{FirstName: "Cliente", LastName: nationalID[:4], NationalID: nationalID},
		Pawn: IntakePawnInput{
			BrandModel: "Reloj Citizen",
			Appraisal:  dec("450.00"),
			LoanAmount: dec("300.00"),
			PawnDate:   today().AddDate(0, 0, days-30),
			DueDate:    today().AddDate(0, 0, days),
		},
	}, userID)
	require.NoError(t, err)
	return pawn
}

func status(t *testing.T, db *gorm.DB, pawnID uint) domain.PawnStatus {
	t.Helper()
	var pawn models.Pawn
	require.NoError(t, db.First(&pawn, pawnID).Error)
	return pawn.Status
}

func TestSweepOverdue(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	pawnSvc := NewPawnService(db)

	past := pawnDueIn(t, pawnSvc, user.ID, "AAAA900101HDF", -3)
	future := pawnDueIn(t, pawnSvc, user.ID, "BBBB900101HDF", 3)
	redeemed := pawnDueIn(t, pawnSvc, user.ID, "CCCC900101HDF", -3)
	_, err := pawnSvc.Redeem(context.Background(), redeemed.ID, user.ID)
	require.NoError(t, err)

	NewCronService(db).sweepOverdue()

	assert.Equal(t, domain.StatusOverdue, status(t, db, past.ID))
	assert.Equal(t, domain.StatusActive, status(t, db, future.ID))
	assert.Equal(t, domain.StatusRedeemed, status(t, db, redeemed.ID), "sweep only touches active pawns")
}

func TestMarkOverdue_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	pawnSvc := NewPawnService(db)
	repo := repositories.NewPawnRepository(db)
	ctx := context.Background()

	pawnDueIn(t, pawnSvc, user.ID, "AAAA900101HDF", -3)

	changed, err := repo.MarkOverdue(ctx, today())
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	changed, err = repo.MarkOverdue(ctx, today())
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestPurgeExpiredTokens(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	tokens := []models.RefreshToken{
		{UserID: user.ID, TokenHash: "hash-expired", ExpiresAt: time.Now().Add(-time.Hour)},
		{UserID: user.ID, TokenHash: "hash-live", ExpiresAt: time.Now().Add(time.Hour)},
	}
	for i := range tokens {
		require.NoError(t, db.Create(&tokens[i]).Error)
	}

	NewCronService(db).purgeExpiredTokens()

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "hash-live", remaining[0].TokenHash)
}

func TestOverduePawnStillDueAfterSweep(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	pawnSvc := NewPawnService(db)

	pawn := pawnDueIn(t, pawnSvc, user.ID, "AAAA900101HDF", -3)
	NewCronService(db).sweepOverdue()

	// Renewal revives the pawn and pushes the due date forward; a second
	// sweep leaves it alone.
	renewed, err := pawnSvc.Renew(context.Background(), pawn.ID, 30, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, renewed.Status)

	NewCronService(db).sweepOverdue()
	assert.Equal(t, domain.StatusActive, status(t, db, pawn.ID))
}
