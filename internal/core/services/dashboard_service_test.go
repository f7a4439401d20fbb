package services

import (
	"context"
	"testing"
	"time"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setStatus(t *testing.T, db *gorm.DB, pawnID uint, status domain.PawnStatus) {
	t.Helper()
	require.NoError(t, db.Model(&models.Pawn{}).Where("id = ?", pawnID).
		Update("status", status).Error)
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	pawnSvc := NewPawnService(db)
	svc := NewDashboardService(db)

	ids := []string{"AAAA900101HDF", "BBBB900101HDF", "CCCC900101HDF", "DDDD900101HDF", "EEEE900101HDF"}
	pawns := make([]*models.Pawn, len(ids))
	for i, id := range ids {
		pawns[i] = intakeFixture(t, pawnSvc, user.ID, id, "500.00")
	}

	setStatus(t, db, pawns[1].ID, domain.StatusOverdue)
	setStatus(t, db, pawns[2].ID, domain.StatusInAuction)
	setStatus(t, db, pawns[3].ID, domain.StatusSold)
	setStatus(t, db, pawns[4].ID, domain.StatusRedeemed)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.TotalPawns)
	assert.Equal(t, int64(1), stats.ActivePawns)
	assert.Equal(t, int64(1), stats.OverduePawns)
	assert.Equal(t, int64(1), stats.InAuction)
	assert.Equal(t, int64(1), stats.Sold)
	assert.Equal(t, int64(1), stats.Redeemed)
	assert.Equal(t, int64(5), stats.TotalClients)
}

func TestGetStats_EmptyShop(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPawns)
	assert.Zero(t, stats.TotalClients)
}

func TestGetRecentActivity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	pawnSvc := NewPawnService(db)
	svc := NewDashboardService(db)
	ctx := context.Background()

	base := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.Local)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	p1 := intakeFixture(t, pawnSvc, user.ID, "AAAA900101HDF", "1000.00")
	p2 := intakeFixture(t, pawnSvc, user.ID, "BBBB900101HDF", "800.00")
	require.NoError(t, db.Model(&models.Pawn{}).Where("id = ?", p1.ID).
		Update("created_at", at(0)).Error)
	require.NoError(t, db.Model(&models.Pawn{}).Where("id = ?", p2.ID).
		Update("created_at", at(20)).Error)

	movements := []models.CashMovement{
		{PawnID: p1.ID, UserID: user.ID, Type: domain.MovementRenewal, Amount: dec("100.00"), CreatedAt: at(10)},
		{PawnID: p1.ID, UserID: user.ID, Type: domain.MovementRedemption, Amount: dec("1100.00"), CreatedAt: at(30)},
	}
	for i := range movements {
		require.NoError(t, db.Create(&movements[i]).Error)
	}

	items, err := svc.GetRecentActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "Desempeño", items[0].Action)
	assert.Equal(t, "Nuevo Empeño", items[1].Action)
	assert.Equal(t, "Refrendo", items[2].Action)
	assert.Equal(t, "Nuevo Empeño", items[3].Action)

	// Movements resolve the item and client through the pawn.
	assert.Equal(t, "Laptop Dell XPS 13", items[0].Item)
	assert.Equal(t, "Carlos Ramirez", items[0].ClientName)
	assert.Equal(t, "1100.00", items[0].Amount.StringFixed(2))

	// A tighter limit truncates after the merge, keeping the newest overall.
	top, err := svc.GetRecentActivity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Desempeño", top[0].Action)
	assert.Equal(t, "Nuevo Empeño", top[1].Action)
	assert.Equal(t, "800.00", top[1].Amount.StringFixed(2))
}

func TestGetRecentActivity_LimitDefaults(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	pawnSvc := NewPawnService(db)
	svc := NewDashboardService(db)

	ids := []string{"AAAA900101HDF", "BBBB900101HDF", "CCCC900101HDF",
		"DDDD900101HDF", "EEEE900101HDF", "FFFF900101HDF", "GGGG900101HDF"}
	for _, id := range ids {
		intakeFixture(t, pawnSvc, user.ID, id, "500.00")
	}

	items, err := svc.GetRecentActivity(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, items, DefaultActivityLimit)
}
