package store

import (
	"context"

	"github.com/mestizo/crm-service/internal/models"
)

type LeadFilter struct {
	Search     string
	Status     models.LeadStatus
	Source     models.LeadSource
	CustomerID uint
}

func (s *Store) CreateLead(ctx context.Context, l *models.Lead) error {
	return wrapErr(s.db.WithContext(ctx).Create(l).Error, "lead")
}

func (s *Store) GetLead(ctx context.Context, id uint) (*models.Lead, error) {
	var l models.Lead
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, wrapErr(err, "lead")
	}
	return &l, nil
}

func (s *Store) UpdateLead(ctx context.Context, l *models.Lead) error {
	return wrapErr(s.db.WithContext(ctx).Save(l).Error, "lead")
}

func (s *Store) ListLeads(ctx context.Context, f LeadFilter, page PageRequest) ([]models.Lead, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Lead{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Search != "" {
		p := searchPattern(f.Search)
		q = q.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", p, p, p)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "lead")
	}
	var out []models.Lead
	if err := page.apply(q.Order("created_at desc")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "lead")
	}
	return out, total, nil
}

func (s *Store) CountLeadsByStatus(ctx context.Context, status models.LeadStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Lead{}).Where("status = ?", status).Count(&n).Error
	if err != nil {
		return 0, wrapErr(err, "lead")
	}
	return n, nil
}
