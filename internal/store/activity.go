package store

import (
	"context"
	"time"

	"github.com/mestizo/crm-service/internal/models"
)

type ActivityFilter struct {
	Type          models.ActivityType
	CustomerID    uint
	OpportunityID uint
	Done          *bool
}

func (s *Store) CreateActivity(ctx context.Context, a *models.Activity) error {
	return wrapErr(s.db.WithContext(ctx).Create(a).Error, "activity")
}

func (s *Store) GetActivity(ctx context.Context, id uint) (*models.Activity, error) {
	var a models.Activity
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, wrapErr(err, "activity")
	}
	return &a, nil
}

func (s *Store) ListActivities(ctx context.Context, f ActivityFilter, page PageRequest) ([]models.Activity, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Activity{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.OpportunityID != 0 {
		q = q.Where("opportunity_id = ?", f.OpportunityID)
	}
	if f.Done != nil {
		if *f.Done {
			q = q.Where("done_at IS NOT NULL")
		} else {
			q = q.Where("done_at IS NULL")
		}
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "activity")
	}
	var out []models.Activity
	if err := page.apply(q.Order("due_at desc, created_at desc")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "activity")
	}
	return out, total, nil
}

// MarkActivityDone flips done_at once. Marking an already-done activity is a
// no-op success; done_at never changes after the first write.
func (s *Store) MarkActivityDone(ctx context.Context, id uint, at time.Time) (*models.Activity, error) {
	res := s.db.WithContext(ctx).Model(&models.Activity{}).
		Where("id = ? AND done_at IS NULL", id).
		Update("done_at", at)
	if res.Error != nil {
		return nil, wrapErr(res.Error, "activity")
	}
	return s.GetActivity(ctx, id)
}

func (s *Store) CountPendingActivities(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Activity{}).Where("done_at IS NULL").Count(&n).Error
	if err != nil {
		return 0, wrapErr(err, "activity")
	}
	return n, nil
}
