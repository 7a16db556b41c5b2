package contract_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/domain/tracking"
	"github.com/gym/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testNow     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	errInjected = errors.New("injected failure")
)

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// failingCompensator always fails
type failingCompensator struct {
	calls int
}

func (f *failingCompensator) DeleteByContract(context.Context, uuid.UUID, string) (*appcontract.CompensationResult, error) {
	f.calls++
	return nil, shared.NewPersistenceError("tracking store unavailable", nil)
}

func (f *failingCompensator) DeleteByClient(context.Context, uuid.UUID, string) (*appcontract.CompensationResult, error) {
	f.calls++
	return nil, shared.NewPersistenceError("tracking store unavailable", nil)
}

type harness struct {
	db           *gorm.DB
	scope        *persistence.GormTransactionScope
	contracts    *persistence.GormContractRepository
	clients      *persistence.GormClientRepository
	plans        *persistence.GormPlanRepository
	movements    *persistence.GormFinancialMovementRepository
	tracking     *persistence.GormTrackingRecordRepository
	compensation *appcontract.CompensationEngine
	service      *appcontract.ContractService
	publisher    *recordingPublisher
	logs         *observer.ObservedLogs
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, persistence.AutoMigrate(db))
	return db
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithCompensator(t, nil)
}

// newHarnessWithCompensator wires the service against sqlite. A nil
// compensator selects the real CompensationEngine.
func newHarnessWithCompensator(t *testing.T, compensator appcontract.Compensator) *harness {
	t.Helper()

	db := newTestDB(t)
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	h := &harness{
		db:        db,
		scope:     persistence.NewGormTransactionScope(db),
		contracts: persistence.NewGormContractRepository(db),
		clients:   persistence.NewGormClientRepository(db),
		plans:     persistence.NewGormPlanRepository(db),
		movements: persistence.NewGormFinancialMovementRepository(db),
		tracking:  persistence.NewGormTrackingRecordRepository(db),
		publisher: &recordingPublisher{},
		logs:      logs,
	}
	h.compensation = appcontract.NewCompensationEngine(h.scope, h.tracking, log)
	if compensator == nil {
		compensator = h.compensation
	}

	h.service = appcontract.NewContractService(
		h.scope, h.contracts, h.clients, h.plans, compensator,
		appcontract.DefaultServiceConfig(), log,
	)
	h.service.SetClock(func() time.Time { return testNow })
	h.service.SetEventPublisher(h.publisher)
	return h
}

func (h *harness) seedClient(t *testing.T, first, email string) *client.Client {
	t.Helper()
	c, err := client.NewClient(first, "Tester", email, "555-0100")
	require.NoError(t, err)
	require.NoError(t, h.clients.Create(context.Background(), c))
	return c
}

func (h *harness) seedPlan(t *testing.T, name string) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(name, "", 30, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, h.plans.Create(context.Background(), p))
	return p
}

func (h *harness) seedTracking(t *testing.T, clientID uuid.UUID, contractID *uuid.UUID) {
	t.Helper()
	rec, err := tracking.NewRecord(clientID, contractID, testNow, map[string]any{"weight_kg": 71.5}, "")
	require.NoError(t, err)
	require.NoError(t, h.tracking.Create(context.Background(), rec))
}

func (h *harness) reloadClient(t *testing.T, id uuid.UUID) *client.Client {
	t.Helper()
	c, err := h.clients.FindByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (h *harness) reloadPlan(t *testing.T, id uuid.UUID) *plan.Plan {
	t.Helper()
	p, err := h.plans.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (h *harness) countContracts(t *testing.T) int64 {
	t.Helper()
	n, err := h.contracts.Count(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	return n
}

func (h *harness) countMovements(t *testing.T) int64 {
	t.Helper()
	n, err := h.movements.Count(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	return n
}

func createRequest(clientID, planID uuid.UUID, price int64) appcontract.CreateContractRequest {
	return appcontract.CreateContractRequest{
		ClientID:  clientID,
		PlanID:    planID,
		Price:     decimal.NewFromInt(price),
		StartDate: testNow,
		EndDate:   testNow.AddDate(0, 0, 30),
	}
}

// failUpdatesOn makes every UPDATE against table fail inside gorm
func failUpdatesOn(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_update_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
}

// failCreatesOn makes every INSERT against table fail inside gorm
func failCreatesOn(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_create_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
}
