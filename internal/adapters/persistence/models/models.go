package models

import (
	"time"

	"luna-empenos/internal/core/domain"
	"luna-empenos/internal/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents usuarios table
type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Username  string      `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string      `gorm:"size:255;not null" json:"-"`
	FullName  string      `gorm:"size:100;not null" json:"full_name"`
	Role      domain.Role `gorm:"size:20;default:'EMPLOYEE'" json:"role"`
	IsActive  bool        `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Business Tables
// ============================================================

// Client represents clientes table. Identity key is the trimmed national ID
// (INE); dedup-on-create is enforced by the unique index.
type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Phone        string    `gorm:"size:20;index" json:"phone"`
	NationalID   string    `gorm:"column:ine;size:20;uniqueIndex" json:"national_id"`
	Address      string    `gorm:"type:text" json:"address"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`

	Pawns []Pawn `gorm:"foreignKey:ClientID" json:"pawns,omitempty"`
}

func (Client) TableName() string {
	return "clientes"
}

// FullName joins first and last name for display.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Pawn represents empenos table: one collateralized loan with its lifecycle
// state. Appraisal and loan amount are strictly positive; loan <= appraisal is
// deliberately NOT enforced.
type Pawn struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ClientID     uint              `gorm:"not null;index" json:"client_id"`
	Category     string            `gorm:"size:50" json:"category"`
	BrandModel   string            `gorm:"size:100" json:"brand_model"`
	Description  string            `gorm:"type:text" json:"description"`
	SerialWeight string            `gorm:"size:100" json:"serial_weight"`
	Observations string            `gorm:"type:text" json:"observations"`
	Appraisal    decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"appraisal"`
	LoanAmount   decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"loan_amount"`
	InterestPct  decimal.Decimal   `gorm:"type:decimal(5,2);default:10.00" json:"interest_pct"`
	PawnDate     time.Time         `gorm:"type:date;not null" json:"pawn_date"`
	DueDate      time.Time         `gorm:"type:date;not null" json:"due_date"`
	Status       domain.PawnStatus `gorm:"size:20;default:'Vigente';index" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Client    *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Movements []CashMovement `gorm:"foreignKey:PawnID" json:"movements,omitempty"`
}

func (Pawn) TableName() string {
	return "empenos"
}

// PawnResponse DTO
type PawnResponse struct {
	ID           uint              `json:"id"`
	ClientID     uint              `json:"client_id"`
	ClientName   string            `json:"client_name,omitempty"`
	Category     string            `json:"category"`
	BrandModel   string            `json:"brand_model"`
	Description  string            `json:"description,omitempty"`
	SerialWeight string            `json:"serial_weight,omitempty"`
	Observations string            `json:"observations,omitempty"`
	Appraisal    decimal.Decimal   `json:"appraisal"`
	LoanAmount   decimal.Decimal   `json:"loan_amount"`
	InterestPct  decimal.Decimal   `json:"interest_pct"`
	RenewalFee   decimal.Decimal   `json:"renewal_fee"`
	RedeemTotal  decimal.Decimal   `json:"redeem_total"`
	PawnDate     time.Time         `json:"pawn_date"`
	DueDate      time.Time         `json:"due_date"`
	Status       domain.PawnStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (p *Pawn) ToResponse() *PawnResponse {
	resp := &PawnResponse{
		ID:           p.ID,
		ClientID:     p.ClientID,
		Category:     p.Category,
		BrandModel:   p.BrandModel,
		Description:  p.Description,
		SerialWeight: p.SerialWeight,
		Observations: p.Observations,
		Appraisal:    p.Appraisal,
		LoanAmount:   p.LoanAmount,
		InterestPct:  p.InterestPct,
		RenewalFee:   money.Interest(p.LoanAmount, p.InterestPct),
		RedeemTotal:  money.RedemptionTotal(p.LoanAmount, p.InterestPct),
		PawnDate:     p.PawnDate,
		DueDate:      p.DueDate,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}

	if p.Client != nil {
		resp.ClientName = p.Client.FullName()
	}

	return resp
}

// CashMovement represents movimientos_caja table. Append-only audit log:
// rows are never updated or deleted. Positive amount = cash received,
// negative = cash disbursed.
type CashMovement struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	PawnID    uint                `gorm:"not null;index" json:"pawn_id"`
	UserID    uint                `gorm:"not null;index" json:"user_id"`
	Type      domain.MovementType `gorm:"column:tipo;size:20;not null" json:"type"`
	Amount    decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"amount"`
	Note      string              `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time           `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Pawn *Pawn `gorm:"foreignKey:PawnID" json:"pawn,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CashMovement) TableName() string {
	return "movimientos_caja"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Client{},
		&Pawn{},
		&CashMovement{},
	)
}
