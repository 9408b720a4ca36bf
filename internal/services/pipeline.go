package services

import (
	"context"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

// PipelineService enforces opportunity stage transitions.
type PipelineService struct {
	store *store.Store
}

func NewPipelineService(s *store.Store) *PipelineService {
	return &PipelineService{store: s}
}

// Transition moves an opportunity to target. WON and LOST are permanent: the
// call fails without mutation once the opportunity is terminal. Transitioning
// to the current stage is an idempotent no-op. The write is a compare-and-swap
// against the stage the caller was validated on, so a concurrent writer cannot
// be silently overwritten.
func (s *PipelineService) Transition(ctx context.Context, opportunityID uint, target models.OpportunityStage) (*models.Opportunity, error) {
	if !target.Valid() {
		return nil, domain.ValidationField("stage", "unknown_stage")
	}
	opp, err := s.store.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.Stage == target {
		return opp, nil
	}
	if !opp.Stage.CanTransition(target) {
		return nil, domain.InvalidTransition("opportunity_stage_terminal")
	}
	swapped, err := s.store.SwapStage(ctx, opportunityID, opp.Stage, target)
	if err != nil {
		return nil, err
	}
	if !swapped {
		// the stage moved underneath us; the validated transition no longer applies
		return nil, domain.InvalidTransition("opportunity_stage_changed_concurrently")
	}
	return s.store.GetOpportunity(ctx, opportunityID)
}
