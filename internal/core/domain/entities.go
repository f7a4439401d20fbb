package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// PawnStatus is the lifecycle state of a pawn. The persisted values are the
// business labels the shop's paperwork and reports use.
type PawnStatus string

const (
	StatusActive    PawnStatus = "Vigente"
	StatusOverdue   PawnStatus = "Vencido"
	StatusRedeemed  PawnStatus = "Desempeñado"
	StatusInAuction PawnStatus = "Rematado"
	StatusSold      PawnStatus = "Vendido"
	// StatusLost is reserved. No operation produces it.
	StatusLost PawnStatus = "Perdido"
)

// Valid reports whether s is one of the known statuses.
func (s PawnStatus) Valid() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusRedeemed, StatusInAuction, StatusSold, StatusLost:
		return true
	}
	return false
}

// MovementType classifies a cash movement.
type MovementType string

const (
	MovementRenewal        MovementType = "Refrendo"
	MovementRedemption     MovementType = "Desempeño"
	MovementCapitalPayment MovementType = "Abono Capital"
	MovementAuctionSale    MovementType = "Venta Remate"
	MovementReappraisal    MovementType = "Reevaluo"
)

// Valid reports whether t is one of the known movement types.
func (t MovementType) Valid() bool {
	switch t {
	case MovementRenewal, MovementRedemption, MovementCapitalPayment, MovementAuctionSale, MovementReappraisal:
		return true
	}
	return false
}

// DefaultExtensionDays is the due-date extension granted by a renewal or
// re-appraisal when the caller does not specify one.
const DefaultExtensionDays = 30
