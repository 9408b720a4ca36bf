package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
)

type ProjectFilter struct {
	Search     string
	Status     models.ProjectStatus
	CustomerID uint
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	return wrapErr(s.db.WithContext(ctx).Create(p).Error, "project")
}

// GetProject loads a project with its media embedded, grouped by media type
// and newest first within each group.
func (s *Store) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).
		Preload("Media", func(q *gorm.DB) *gorm.DB { return q.Order("media_type, created_at desc") }).
		First(&p, id).Error
	if err != nil {
		return nil, wrapErr(err, "project")
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, f ProjectFilter, page PageRequest) ([]models.Project, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Project{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Search != "" {
		p := searchPattern(f.Search)
		q = q.Where("title LIKE ? OR description LIKE ?", p, p)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "project")
	}
	var out []models.Project
	if err := page.apply(q.Order("created_at desc")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "project")
	}
	return out, total, nil
}

// SetProjectStatus has no ordering to enforce; any valid status may follow any other.
func (s *Store) SetProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return wrapErr(res.Error, "project")
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("project")
	}
	return nil
}

// DeleteProject cascades to the project's media.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	return s.Tx(ctx, func(tx *Store) error {
		var p models.Project
		if err := tx.db.First(&p, id).Error; err != nil {
			return wrapErr(err, "project")
		}
		if err := tx.db.Where("project_id = ?", id).Delete(&models.ProjectMedia{}).Error; err != nil {
			return wrapErr(err, "project_media")
		}
		return wrapErr(tx.db.Delete(&models.Project{}, id).Error, "project")
	})
}

func (s *Store) CreateProjectMedia(ctx context.Context, m *models.ProjectMedia) error {
	return wrapErr(s.db.WithContext(ctx).Create(m).Error, "project_media")
}

func (s *Store) DeleteProjectMedia(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.ProjectMedia{}, id)
	if res.Error != nil {
		return wrapErr(res.Error, "project_media")
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("project_media")
	}
	return nil
}

func (s *Store) GetProjectMedia(ctx context.Context, id uint) (*models.ProjectMedia, error) {
	var m models.ProjectMedia
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, wrapErr(err, "project_media")
	}
	return &m, nil
}
