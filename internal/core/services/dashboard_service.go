package services

import (
	"context"
	"sort"
	"time"

	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardService builds read-only projections over the pawn store and the
// cash log. It owns no state of its own.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats represents dashboard counters
type DashboardStats struct {
	TotalPawns   int64 `json:"total_pawns"`
	ActivePawns  int64 `json:"active_pawns"`
	OverduePawns int64 `json:"overdue_pawns"`
	InAuction    int64 `json:"in_auction"`
	Redeemed     int64 `json:"redeemed"`
	Sold         int64 `json:"sold"`
	TotalClients int64 `json:"total_clients"`
}

// GetStats returns pawn counts by state plus the client total
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := repositories.NewPawnRepository(s.db).CountByStatus(ctx)
	if err != nil {
		return nil, wrapStorage(err)
	}

	clients, err := repositories.NewClientRepository(s.db).Count(ctx)
	if err != nil {
		return nil, wrapStorage(err)
	}

	stats := &DashboardStats{
		ActivePawns:  counts[string(domain.StatusActive)],
		OverduePawns: counts[string(domain.StatusOverdue)],
		InAuction:    counts[string(domain.StatusInAuction)],
		Redeemed:     counts[string(domain.StatusRedeemed)],
		Sold:         counts[string(domain.StatusSold)],
		TotalClients: clients,
	}
	for _, n := range counts {
		stats.TotalPawns += n
	}
	return stats, nil
}

// ActivityItem is one row of the recent-activity feed
type ActivityItem struct {
	ClientName string          `json:"client_name"`
	Action     string          `json:"action"`
	Item       string          `json:"item"`
	Amount     decimal.Decimal `json:"amount"`
	Timestamp  time.Time       `json:"timestamp"`
}

// DefaultActivityLimit caps the feed when the caller does not ask for a size
const DefaultActivityLimit = 5

// MaxActivityLimit is the hard cap on the feed size
const MaxActivityLimit = 50

// GetRecentActivity merges pawn registrations and cash movements into one
// feed sorted by timestamp descending, truncated to limit.
func (s *DashboardService) GetRecentActivity(ctx context.Context, limit int) ([]ActivityItem, error) {
	if limit < 1 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	pawns, err := repositories.NewPawnRepository(s.db).ListRecent(ctx, limit)
	if err != nil {
		return nil, wrapStorage(err)
	}

	movements, err := repositories.NewMovementRepository(s.db).ListRecent(ctx, limit)
	if err != nil {
		return nil, wrapStorage(err)
	}

	items := make([]ActivityItem, 0, len(pawns)+len(movements))
	for _, p := range pawns {
		item := ActivityItem{
			Action:    "Nuevo Empeño",
			Item:      p.BrandModel,
			Amount:    p.LoanAmount,
			Timestamp: p.CreatedAt,
		}
		if p.Client != nil {
			item.ClientName = p.Client.FullName()
		}
		items = append(items, item)
	}
	for _, m := range movements {
		item := ActivityItem{
			Action:    string(m.Type),
			Amount:    m.Amount,
			Timestamp: m.CreatedAt,
		}
		if m.Pawn != nil {
			item.Item = m.Pawn.BrandModel
			if m.Pawn.Client != nil {
				item.ClientName = m.Pawn.Client.FullName()
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
