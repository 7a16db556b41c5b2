package contract_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractService_ConcurrentCreate_LeavesSingleVigente(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.seedClient(t, "Ana", "ana@example.com")
	p := h.seedPlan(t, "Monthly")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		errs      []error
	)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := h.service.Create(ctx, createRequest(c.ID, p.ID, 100))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			succeeded++
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	require.Len(t, errs, attempts-1)
	for _, err := range errs {
		assert.True(t, shared.IsConflict(err), "got %v", err)
	}

	filter := shared.DefaultFilter()
	filter.Filters["client_id"] = c.ID
	filter.Filters["plan_id"] = p.ID
	filter.Filters["state"] = contract.StateVigente
	n, err := h.contracts.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, 1, len(h.reloadClient(t, c.ID).PlanIDs))
	assert.Equal(t, 1, len(h.reloadPlan(t, p.ID).ClientIDs))
}

func TestContractRepository_UniqueIndexRejectsSecondVigente(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.seedClient(t, "Ana", "ana@example.com")
	p := h.seedPlan(t, "Monthly")

	req := createRequest(c.ID, p.ID, 100)
	terms := contract.Terms{StartDate: req.StartDate, EndDate: req.EndDate, Price: req.Price}

	first, err := contract.NewContract(c.ID, p.ID, terms, testNow)
	require.NoError(t, err)
	require.NoError(t, h.contracts.Create(ctx, first))

	// bypasses the service precondition to hit the store constraint directly
	second, err := contract.NewContract(c.ID, p.ID, terms, testNow)
	require.NoError(t, err)
	err = h.contracts.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))

	require.NoError(t, first.Cancel("", testNow))
	require.NoError(t, h.contracts.SaveWithLock(ctx, first))
	require.NoError(t, h.contracts.Create(ctx, second))
}
