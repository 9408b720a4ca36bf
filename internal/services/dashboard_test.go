package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mestizo/crm-service/internal/models"
)

func TestDashboardStatsEmpty(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewDashboardService(st)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.Leads.New)
	require.EqualValues(t, 0, stats.Leads.Qualified)
	require.True(t, stats.TotalPipelineValue.IsZero())
	require.EqualValues(t, 0, stats.ActivitiesPending)
	for _, stage := range models.AllStages {
		require.Contains(t, stats.OpportunitiesByStage, stage)
		require.EqualValues(t, 0, stats.OpportunitiesByStage[stage])
	}
}

func TestDashboardStatsCounts(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewDashboardService(st)
	customer := seedCustomer(t, st)

	for _, status := range []models.LeadStatus{
		models.LeadNew, models.LeadNew, models.LeadQualified,
		models.LeadDisqualified, models.LeadConverted,
	} {
		l := models.Lead{Name: "Lead", Source: models.SourceWeb, Status: status}
		require.NoError(t, st.CreateLead(ctx, &l))
	}

	mkOpp := func(stage models.OpportunityStage, value int64) {
		o := models.Opportunity{
			CustomerID:    customer.ID,
			Title:         "Deal",
			Stage:         stage,
			ValueEstimate: decimal.NewFromInt(value),
		}
		require.NoError(t, st.CreateOpportunity(ctx, &o))
	}
	mkOpp(models.StageNew, 100)
	mkOpp(models.StageNegotiation, 250)
	mkOpp(models.StageNegotiation, 50)
	mkOpp(models.StageWon, 9000) // closed deals are history, not pipeline
	mkOpp(models.StageLost, 400)

	for _, status := range []models.QuoteStatus{
		models.QuoteDraft, models.QuoteDraft, models.QuoteSent, models.QuoteAccepted,
	} {
		q := models.Quote{CustomerID: customer.ID, Status: status}
		require.NoError(t, st.CreateQuote(ctx, &q))
	}

	pending := models.Activity{Type: models.ActivityCall, CustomerID: &customer.ID}
	require.NoError(t, st.CreateActivity(ctx, &pending))
	done := models.Activity{Type: models.ActivityVisit, CustomerID: &customer.ID}
	require.NoError(t, st.CreateActivity(ctx, &done))
	_, err := st.MarkActivityDone(ctx, done.ID, time.Now())
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	require.EqualValues(t, 2, stats.Leads.New)
	require.EqualValues(t, 1, stats.Leads.Qualified)

	require.EqualValues(t, 1, stats.OpportunitiesByStage[models.StageNew])
	require.EqualValues(t, 2, stats.OpportunitiesByStage[models.StageNegotiation])
	require.EqualValues(t, 1, stats.OpportunitiesByStage[models.StageWon])
	require.EqualValues(t, 1, stats.OpportunitiesByStage[models.StageLost])
	require.EqualValues(t, 0, stats.OpportunitiesByStage[models.StageContacted])

	require.True(t, stats.TotalPipelineValue.Equal(decimal.NewFromInt(400)),
		"pipeline value = %s", stats.TotalPipelineValue)

	require.EqualValues(t, 2, stats.Quotes.Draft)
	require.EqualValues(t, 1, stats.Quotes.Sent)
	require.EqualValues(t, 1, stats.ActivitiesPending)
}

func TestDashboardPipelineValueTracksTransitions(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewDashboardService(st)
	pipeline := NewPipelineService(st)
	customer := seedCustomer(t, st)

	o := models.Opportunity{
		CustomerID:    customer.ID,
		Title:         "Terraza",
		Stage:         models.StageQuoteSent,
		ValueEstimate: decimal.RequireFromString("1500.50"),
	}
	require.NoError(t, st.CreateOpportunity(ctx, &o))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.True(t, stats.TotalPipelineValue.Equal(decimal.RequireFromString("1500.50")))

	_, err = pipeline.Transition(ctx, o.ID, models.StageWon)
	require.NoError(t, err)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.True(t, stats.TotalPipelineValue.IsZero())
}
