package services

import (
	"context"
	"testing"
	"time"

	"luna-empenos/internal/adapters/persistence/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema migrated.
// MaxOpenConns is pinned to 1 because every new connection to :memory: gets
// its own empty database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// seedUser inserts a user to attribute movements to. The password hash is a
// placeholder; auth tests hash their own.
func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Username: "cajero1",
		Password: "not-a-real-hash",
		FullName: "Cajero Uno",
		Role:     "EMPLOYEE",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// intakeFixture registers a pawn for a fresh client and returns it.
func intakeFixture(t *testing.T, svc *PawnService, userID uint, nationalID, loan string) *models.Pawn {
	t.Helper()

	pawn, err := svc.Intake(context.Background(), &IntakeInput{
		Client: IntakeClientInput{
			FirstName:  "Carlos",
			LastName:   "Ramirez",
			Phone:      "5512345678",
			NationalID: nationalID,
			Address:    "Av. Luna 42",
		},
		Pawn: IntakePawnInput{
			Category:    "Electrónica",
			BrandModel:  "Laptop Dell XPS 13",
			Description: "Laptop con cargador",
			Appraisal:   dec(loan).Mul(dec("1.5")),
			LoanAmount:  dec(loan),
			PawnDate:    date(2026, time.January, 15),
			DueDate:     date(2026, time.February, 14),
		},
	}, userID)
	require.NoError(t, err)
	return pawn
}

// movementsOf reads a pawn's cash log directly.
func movementsOf(t *testing.T, db *gorm.DB, pawnID uint) []models.CashMovement {
	t.Helper()

	var movements []models.CashMovement
	require.NoError(t, db.Where("pawn_id = ?", pawnID).Order("id").Find(&movements).Error)
	return movements
}
