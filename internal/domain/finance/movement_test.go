package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement(t *testing.T) {
	now := time.Now()
	clientID := uuid.New()

	m, err := NewMovement(MovementTypeIncome, decimal.NewFromInt(100), now, CategoryMembership, "first month")
	require.NoError(t, err)
	m.ForClient(clientID).ForContract(uuid.Nil)

	require.NotNil(t, m.ClientID)
	assert.Equal(t, clientID, *m.ClientID)
	assert.Nil(t, m.ContractID)
	assert.True(t, decimal.NewFromInt(100).Equal(m.SignedAmount()))

	e, err := NewMovement(MovementTypeExpense, decimal.NewFromInt(40), now, "rent", "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-40).Equal(e.SignedAmount()))
}

func TestNewMovement_Invalid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		typ      MovementType
		amount   decimal.Decimal
		date     time.Time
		category string
	}{
		{"unknown type", "transfer", decimal.NewFromInt(1), now, "x"},
		{"zero amount", MovementTypeIncome, decimal.Zero, now, "x"},
		{"negative amount", MovementTypeIncome, decimal.NewFromInt(-1), now, "x"},
		{"missing date", MovementTypeIncome, decimal.NewFromInt(1), time.Time{}, "x"},
		{"missing category", MovementTypeIncome, decimal.NewFromInt(1), now, "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMovement(tt.typ, tt.amount, tt.date, tt.category, "")
			assert.True(t, shared.IsValidation(err))
		})
	}
}
