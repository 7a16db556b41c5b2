package membership

import (
	"context"
	"testing"

	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlanService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPlanRepository)
	svc := NewPlanService(repo, nil)

	repo.On("Create", ctx, mock.AnythingOfType("*plan.Plan")).Return(nil)

	resp, err := svc.Create(ctx, CreatePlanRequest{
		Name:         "Monthly",
		DurationDays: 30,
		BasePrice:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.State)
	assert.Empty(t, resp.ClientIDs)

	_, err = svc.Create(ctx, CreatePlanRequest{Name: ""})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestPlanService_SetState(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPlanRepository)
	svc := NewPlanService(repo, nil)

	p, err := plan.NewPlan("Monthly", "", 30, decimal.NewFromInt(100))
	require.NoError(t, err)
	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("SaveWithLock", ctx, p).Return(nil).Once()

	resp, err := svc.SetState(ctx, p.ID, UpdatePlanStateRequest{State: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.State)

	// unchanged state does not write
	_, err = svc.SetState(ctx, p.ID, UpdatePlanStateRequest{State: "inactive"})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "SaveWithLock", 1)

	_, err = svc.SetState(ctx, p.ID, UpdatePlanStateRequest{State: "archived"})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestPlanService_List_RejectsUnknownState(t *testing.T) {
	svc := NewPlanService(new(MockPlanRepository), nil)
	_, err := svc.List(context.Background(), PlanListFilter{State: "archived"})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}
