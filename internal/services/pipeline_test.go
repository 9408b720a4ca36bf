package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

func seedOpportunity(t *testing.T, s *store.Store, customerID uint, stage models.OpportunityStage) models.Opportunity {
	t.Helper()
	o := models.Opportunity{
		CustomerID:    customerID,
		Title:         "Backyard remodel",
		Stage:         stage,
		ValueEstimate: decimal.NewFromInt(1000),
	}
	require.NoError(t, s.CreateOpportunity(context.Background(), &o))
	return o
}

func TestPipelineTerminalIsPermanent(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewPipelineService(st)
	customer := seedCustomer(t, st)
	opp := seedOpportunity(t, st, customer.ID, models.StageNew)

	out, err := svc.Transition(ctx, opp.ID, models.StageNegotiation)
	require.NoError(t, err)
	require.Equal(t, models.StageNegotiation, out.Stage)

	out, err = svc.Transition(ctx, opp.ID, models.StageWon)
	require.NoError(t, err)
	require.Equal(t, models.StageWon, out.Stage)

	// WON is history: no target is accepted, including LOST
	for _, target := range models.AllStages {
		if target == models.StageWon {
			continue
		}
		_, err = svc.Transition(ctx, opp.ID, target)
		require.ErrorIs(t, err, domain.ErrInvalidTransition, "target=%s", target)
	}
	reloaded, err := st.GetOpportunity(ctx, opp.ID)
	require.NoError(t, err)
	require.Equal(t, models.StageWon, reloaded.Stage)
}

func TestPipelineSelfTransitionIsNoop(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewPipelineService(st)
	customer := seedCustomer(t, st)
	opp := seedOpportunity(t, st, customer.ID, models.StageContacted)

	out, err := svc.Transition(ctx, opp.ID, models.StageContacted)
	require.NoError(t, err)
	require.Equal(t, models.StageContacted, out.Stage)
}

func TestPipelineAnyActiveStageMayMoveAnywhere(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewPipelineService(st)
	customer := seedCustomer(t, st)

	// a deal can be lost from any active stage, and stages may move backward
	opp := seedOpportunity(t, st, customer.ID, models.StageQuoteSent)
	out, err := svc.Transition(ctx, opp.ID, models.StageContacted)
	require.NoError(t, err)
	require.Equal(t, models.StageContacted, out.Stage)

	out, err = svc.Transition(ctx, opp.ID, models.StageLost)
	require.NoError(t, err)
	require.Equal(t, models.StageLost, out.Stage)
}

func TestPipelineRejectsUnknownStageAndMissingOpportunity(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewPipelineService(st)
	customer := seedCustomer(t, st)
	opp := seedOpportunity(t, st, customer.ID, models.StageNew)

	_, err := svc.Transition(ctx, opp.ID, models.OpportunityStage("ARCHIVED"))
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Transition(ctx, opp.ID+1000, models.StageContacted)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPipelineStaleSwapLeavesStageUntouched(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	customer := seedCustomer(t, st)
	opp := seedOpportunity(t, st, customer.ID, models.StageNew)

	// another writer moves the deal first
	swapped, err := st.SwapStage(ctx, opp.ID, models.StageNew, models.StageContacted)
	require.NoError(t, err)
	require.True(t, swapped)

	// the swap keyed on the old stage must find zero rows and change nothing
	swapped, err = st.SwapStage(ctx, opp.ID, models.StageNew, models.StageNegotiation)
	require.NoError(t, err)
	require.False(t, swapped)

	reloaded, err := st.GetOpportunity(ctx, opp.ID)
	require.NoError(t, err)
	require.Equal(t, models.StageContacted, reloaded.Stage)
}
