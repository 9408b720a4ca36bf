package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

// DashboardService derives summary statistics from live store state. No
// caching: staleness here is worse than recomputation cost at this scale.
type DashboardService struct {
	store *store.Store
}

func NewDashboardService(s *store.Store) *DashboardService {
	return &DashboardService{store: s}
}

type LeadCounts struct {
	New       int64 `json:"new"`
	Qualified int64 `json:"qualified"`
}

type QuoteCounts struct {
	Draft int64 `json:"draft"`
	Sent  int64 `json:"sent"`
}

type Stats struct {
	Leads                LeadCounts                        `json:"leads"`
	OpportunitiesByStage map[models.OpportunityStage]int64 `json:"opportunities_by_stage"`
	TotalPipelineValue   decimal.Decimal                   `json:"total_pipeline_value"`
	Quotes               QuoteCounts                       `json:"quotes"`
	ActivitiesPending    int64                             `json:"activities_pending"`
}

// Stats computes the aggregate snapshot. Pipeline value covers active stages
// only; WON and LOST are history, not pipeline.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{OpportunitiesByStage: map[models.OpportunityStage]int64{}}
	var err error

	if st.Leads.New, err = s.store.CountLeadsByStatus(ctx, models.LeadNew); err != nil {
		return nil, err
	}
	if st.Leads.Qualified, err = s.store.CountLeadsByStatus(ctx, models.LeadQualified); err != nil {
		return nil, err
	}
	for _, stage := range models.AllStages {
		n, err := s.store.CountOpportunitiesByStage(ctx, stage)
		if err != nil {
			return nil, err
		}
		st.OpportunitiesByStage[stage] = n
	}
	if st.TotalPipelineValue, err = s.store.SumPipelineValue(ctx); err != nil {
		return nil, err
	}
	if st.Quotes.Draft, err = s.store.CountQuotesByStatus(ctx, models.QuoteDraft); err != nil {
		return nil, err
	}
	if st.Quotes.Sent, err = s.store.CountQuotesByStatus(ctx, models.QuoteSent); err != nil {
		return nil, err
	}
	if st.ActivitiesPending, err = s.store.CountPendingActivities(ctx); err != nil {
		return nil, err
	}
	return st, nil
}
