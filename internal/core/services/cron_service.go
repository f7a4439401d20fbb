package services

import (
	"context"
	"log"
	"time"

	"luna-empenos/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the daily overdue sweep. Lifecycle operations never flip a
// pawn to Vencido themselves; this job is the single place that compares due
// dates against the calendar.
type CronService struct {
	db   *gorm.DB
	cron *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		db:   db,
		cron: cron.New(),
	}
}

// Start schedules the nightly jobs and runs them once immediately so a
// restarted server catches up.
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc("5 0 * * *", s.sweepOverdue); err != nil {
		log.Printf("❌ Failed to schedule overdue sweep: %v", err)
		return
	}
	if _, err := s.cron.AddFunc("15 0 * * *", s.purgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token purge: %v", err)
		return
	}

	s.cron.Start()
	log.Println("🚀 CronService started (overdue sweep 00:05, token purge 00:15)")

	go func() {
		s.sweepOverdue()
		s.purgeExpiredTokens()
	}()
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// sweepOverdue marks active pawns past their due date as overdue
func (s *CronService) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	y, m, d := time.Now().Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, time.Local)

	changed, err := repositories.NewPawnRepository(s.db).MarkOverdue(ctx, startOfDay)
	if err != nil {
		log.Printf("❌ Overdue sweep error: %v", err)
		return
	}
	if changed > 0 {
		log.Printf("⏰ Overdue sweep: %d pawn(s) marked Vencido", changed)
	}
}

// purgeExpiredTokens deletes refresh tokens past their expiry. Revoked but
// unexpired tokens stay until they expire so reuse attempts keep reporting
// "revoked" instead of "invalid".
func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repositories.NewRefreshTokenRepository(s.db).DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token purge error: %v", err)
	}
}
