package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPawnStatusValid(t *testing.T) {
	for _, s := range []PawnStatus{StatusActive, StatusOverdue, StatusRedeemed, StatusInAuction, StatusSold, StatusLost} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, PawnStatus("Empeñado").Valid())
	assert.False(t, PawnStatus("").Valid())
}

func TestMovementTypeValid(t *testing.T) {
	for _, m := range []MovementType{MovementRenewal, MovementRedemption, MovementCapitalPayment, MovementAuctionSale, MovementReappraisal} {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, MovementType("Propina").Valid())
	assert.False(t, MovementType("").Valid())
}
