package contract

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssociationManager keeps Client.PlanIDs and Plan.ClientIDs mutually consistent.
// It issues one write per aggregate and relies on the caller's atomic unit to
// make the pair all-or-nothing. Both rows are read under a row lock, so
// concurrent enrolments touching the same client or plan queue instead of
// failing the version check.
type AssociationManager struct {
	logger *zap.Logger
}

// NewAssociationManager creates a new AssociationManager
func NewAssociationManager(logger *zap.Logger) *AssociationManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssociationManager{logger: logger}
}

// Link adds planID to the client and clientID to the plan. Existing references are left alone.
func (m *AssociationManager) Link(ctx context.Context, repos TransactionalRepositories, clientID, planID uuid.UUID) error {
	c, err := repos.ClientRepo().FindByIDForUpdate(ctx, clientID)
	if err != nil {
		return err
	}
	if c.AddPlan(planID) {
		if err := repos.ClientRepo().SaveWithLock(ctx, c); err != nil {
			return err
		}
	}

	p, err := repos.PlanRepo().FindByIDForUpdate(ctx, planID)
	if err != nil {
		return err
	}
	if p.AddClient(clientID) {
		if err := repos.PlanRepo().SaveWithLock(ctx, p); err != nil {
			return err
		}
	}

	m.logger.Debug("Association linked",
		zap.String("client_id", clientID.String()),
		zap.String("plan_id", planID.String()),
	)
	return nil
}

// Unlink removes the reciprocal references. Missing references are not an error.
func (m *AssociationManager) Unlink(ctx context.Context, repos TransactionalRepositories, clientID, planID uuid.UUID) error {
	c, err := repos.ClientRepo().FindByIDForUpdate(ctx, clientID)
	if err != nil {
		return err
	}
	if c.RemovePlan(planID) {
		if err := repos.ClientRepo().SaveWithLock(ctx, c); err != nil {
			return err
		}
	}

	p, err := repos.PlanRepo().FindByIDForUpdate(ctx, planID)
	if err != nil {
		return err
	}
	if p.RemoveClient(clientID) {
		if err := repos.PlanRepo().SaveWithLock(ctx, p); err != nil {
			return err
		}
	}

	m.logger.Debug("Association unlinked",
		zap.String("client_id", clientID.String()),
		zap.String("plan_id", planID.String()),
	)
	return nil
}
