package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/domain/tracking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormClientRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	ana := mustClient(t, db, "Ana", "Lopez", "ana@example.com")
	mustClient(t, db, "Ben", "Ruiz", "ben@example.com")
	mustClient(t, db, "Carla", "Anaya", "carla@example.com")

	t.Run("plan references round-trip in order", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()
		loaded, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Empty(t, loaded.PlanIDs)

		require.True(t, loaded.AddPlan(first))
		require.NoError(t, repo.SaveWithLock(ctx, loaded))
		loaded, err = repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		require.True(t, loaded.AddPlan(second))
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		stored, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second}, stored.PlanIDs)
		assert.Equal(t, 3, stored.Version)
	})

	t.Run("deactivation persists a false flag", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		loaded.Deactivate()
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		stored, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.False(t, stored.Active)

		filter := shared.DefaultFilter()
		filter.Filters["active"] = true
		n, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("search matches names and email case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "ANA"
		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, items, 2, "Ana Lopez and Carla Anaya")

		filter.Search = "ben@"
		items, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Ben", items[0].FirstName)
	})

	t.Run("exists by email", func(t *testing.T) {
		ok, err := repo.ExistsByEmail(ctx, "ben@example.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByEmail(ctx, "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ana.ID))
		_, err := repo.FindByID(ctx, ana.ID)
		assert.True(t, shared.IsNotFound(err))
		assert.True(t, shared.IsNotFound(repo.Delete(ctx, ana.ID)))
	})
}

func TestGormPlanRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPlanRepository(db)
	ctx := context.Background()

	crossfit := mustPlan(t, db, "Crossfit", 120)
	mustPlan(t, db, "Yoga", 80)

	loaded, err := repo.FindByID(ctx, crossfit.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(120).Equal(loaded.BasePrice))
	assert.Equal(t, plan.StateActive, loaded.State)

	clientID := uuid.New()
	require.True(t, loaded.AddClient(clientID))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	loaded, err = repo.FindByID(ctx, crossfit.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.SetState(plan.StateInactive))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	stored, err := repo.FindByID(ctx, crossfit.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{clientID}, stored.ClientIDs)
	assert.Equal(t, plan.StateInactive, stored.State)
	assert.Equal(t, 3, stored.Version)

	// crossfit still holds version 1
	stale := *crossfit
	stale.ClientIDs = nil
	require.True(t, stale.AddClient(uuid.New()))
	assert.True(t, shared.IsConflict(repo.SaveWithLock(ctx, &stale)))

	filter := shared.DefaultFilter()
	filter.Filters["state"] = plan.StateActive
	items, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Yoga", items[0].Name)

	filter = shared.DefaultFilter()
	filter.Search = "cross"
	n, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormTrackingRecordRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTrackingRecordRepository(db)
	ctx := context.Background()

	clientA, clientB := uuid.New(), uuid.New()
	contractA := uuid.New()

	add := func(clientID uuid.UUID, contractID *uuid.UUID) {
		rec, err := tracking.NewRecord(clientID, contractID, fixedNow, map[string]any{"weight_kg": 70.2, "note": "ok"}, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, rec))
	}
	add(clientA, &contractA)
	add(clientA, &contractA)
	add(clientA, nil)
	add(clientB, nil)

	items, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{"contract_id": contractA}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 70.2, items[0].Measurements["weight_kg"])

	n, err := repo.CountByClient(ctx, clientA)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	deleted, err := repo.DeleteByContract(ctx, contractA)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	n, err = repo.CountByContract(ctx, contractA)
	require.NoError(t, err)
	assert.Zero(t, n)

	deleted, err = repo.DeleteByClient(ctx, clientA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	total, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "other client untouched")

	deleted, err = repo.DeleteByClient(ctx, clientA)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestGormTrackingRecordRepository_MeasurementsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTrackingRecordRepository(db)
	ctx := context.Background()

	measurements := map[string]any{
		"weight_kg": 70.2,
		"reps":      float64(12),
		"grip":      "wide",
		"done":      true,
		"skinfold":  map[string]any{"triceps_mm": 11.5},
		"sets":      []any{float64(8), 7.5},
	}
	clientID := uuid.New()
	rec, err := tracking.NewRecord(clientID, nil, fixedNow, measurements, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, rec))

	items, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{"client_id": clientID}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, measurements, items[0].Measurements)
}

func TestGormFinancialMovementRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFinancialMovementRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	post := func(kind finance.MovementType, amount int64, daysAgo int, category string) *finance.FinancialMovement {
		m, err := finance.NewMovement(kind, decimal.NewFromInt(amount), fixedNow.AddDate(0, 0, -daysAgo), category, "")
		require.NoError(t, err)
		m.ForClient(clientID)
		require.NoError(t, repo.Create(ctx, m))
		return m
	}
	newest := post(finance.MovementTypeIncome, 100, 0, finance.CategoryMembership)
	post(finance.MovementTypeIncome, 50, 10, finance.CategoryRenewal)
	post(finance.MovementTypeExpense, 30, 20, "equipment")

	t.Run("default order is newest first", func(t *testing.T) {
		items, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, newest.ID, items[0].ID)
		require.NotNil(t, items[0].ClientID)
		assert.Equal(t, clientID, *items[0].ClientID)
	})

	tests := []struct {
		name    string
		filters map[string]any
		want    int64
	}{
		{"by type", map[string]any{"type": finance.MovementTypeIncome}, 2},
		{"by category", map[string]any{"category": "equipment"}, 1},
		{"from", map[string]any{"from": fixedNow.AddDate(0, 0, -15)}, 2},
		{"range", map[string]any{"from": fixedNow.AddDate(0, 0, -15), "to": fixedNow.AddDate(0, 0, -5)}, 1},
		{"by client", map[string]any{"client_id": clientID}, 3},
		{"by other client", map[string]any{"client_id": uuid.New()}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.Count(ctx, shared.Filter{Filters: tt.filters})
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}
