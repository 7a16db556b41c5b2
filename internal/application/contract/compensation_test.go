package contract_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContractService_Cancel_CompensationFailureIsAWarning(t *testing.T) {
	ctx := context.Background()
	compensator := &failingCompensator{}
	h := newHarnessWithCompensator(t, compensator)
	c := h.seedClient(t, "Ana", "ana@example.com")
	p := h.seedPlan(t, "Monthly")

	created, err := h.service.Create(ctx, createRequest(c.ID, p.ID, 100))
	require.NoError(t, err)
	id := created.ContractID
	h.seedTracking(t, c.ID, &id)

	res, err := h.service.Cancel(ctx, id, "client request")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Compensated)
	require.NotNil(t, res.Warning)
	assert.Equal(t, appcontract.CompensationScopeContract, res.Warning.Scope)
	assert.Equal(t, id, res.Warning.TargetID)
	assert.Contains(t, res.Warning.Message, "tracking store unavailable")
	assert.Equal(t, 1, compensator.calls)

	got, err := h.contracts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, contract.StateCancelado, got.State)

	// stale tracking data is left behind
	remaining, err := h.tracking.CountByContract(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	warned := h.logs.FilterMessage("Tracking record compensation failed").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zap.WarnLevel, warned[0].Level)
}

func TestCompensationEngine_DeleteByContract(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.seedClient(t, "Ana", "ana@example.com")
	contractID := uuid.New()
	other := uuid.New()

	t.Run("no records is a no-op", func(t *testing.T) {
		res, err := h.compensation.DeleteByContract(ctx, contractID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.DeletedCount)
		assert.Equal(t, 0, h.logs.FilterMessage("Tracking records compensated").Len())
	})

	t.Run("removes only records of the contract", func(t *testing.T) {
		h.seedTracking(t, c.ID, &contractID)
		h.seedTracking(t, c.ID, &contractID)
		h.seedTracking(t, c.ID, &other)

		res, err := h.compensation.DeleteByContract(ctx, contractID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.DeletedCount)

		left, err := h.tracking.CountByContract(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, int64(1), left)
	})
}

func TestCompensationEngine_DeleteByClient(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	ana := h.seedClient(t, "Ana", "ana@example.com")
	bruno := h.seedClient(t, "Bruno", "bruno@example.com")
	contractID := uuid.New()

	h.seedTracking(t, ana.ID, nil)
	h.seedTracking(t, ana.ID, &contractID)
	h.seedTracking(t, bruno.ID, nil)

	res, err := h.compensation.DeleteByClient(ctx, ana.ID, "client deleted")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.DeletedCount)

	left, err := h.tracking.CountByClient(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}

func TestCompensationWarning_String(t *testing.T) {
	id := uuid.New()
	w := appcontract.NewCompensationWarning(appcontract.CompensationScopeClient, id, "", nil)
	assert.Contains(t, w.String(), "did not complete")
	assert.Contains(t, w.Message, id.String())
}
