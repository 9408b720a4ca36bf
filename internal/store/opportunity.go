package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/models"
)

type OpportunityFilter struct {
	Search     string
	Stage      models.OpportunityStage
	CustomerID uint
}

func (s *Store) CreateOpportunity(ctx context.Context, o *models.Opportunity) error {
	return wrapErr(s.db.WithContext(ctx).Create(o).Error, "opportunity")
}

func (s *Store) GetOpportunity(ctx context.Context, id uint) (*models.Opportunity, error) {
	var o models.Opportunity
	if err := s.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, wrapErr(err, "opportunity")
	}
	return &o, nil
}

func (s *Store) ListOpportunities(ctx context.Context, f OpportunityFilter, page PageRequest) ([]models.Opportunity, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Opportunity{})
	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", searchPattern(f.Search))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "opportunity")
	}
	var out []models.Opportunity
	if err := page.apply(q.Order("created_at desc")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "opportunity")
	}
	return out, total, nil
}

// SwapStage applies the transition only if the stage is still the one the
// caller validated against. Returns false when a concurrent writer got there
// first (zero rows matched).
func (s *Store) SwapStage(ctx context.Context, id uint, from, to models.OpportunityStage) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Opportunity{}).
		Where("id = ? AND stage = ?", id, from).
		Update("stage", to)
	if res.Error != nil {
		return false, wrapErr(res.Error, "opportunity")
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) CountOpportunitiesByStage(ctx context.Context, stage models.OpportunityStage) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Opportunity{}).Where("stage = ?", stage).Count(&n).Error
	if err != nil {
		return 0, wrapErr(err, "opportunity")
	}
	return n, nil
}

// SumPipelineValue totals value_estimate across non-terminal stages.
func (s *Store) SumPipelineValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.WithContext(ctx).Model(&models.Opportunity{}).
		Where("stage NOT IN ?", []models.OpportunityStage{models.StageWon, models.StageLost}).
		Select("COALESCE(SUM(value_estimate), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, wrapErr(err, "opportunity")
	}
	return total, nil
}
