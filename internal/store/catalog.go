package store

import (
	"context"

	"github.com/mestizo/crm-service/internal/models"
)

type CatalogFilter struct {
	Search   string
	Type     models.QuoteItemType
	Category string
	Active   *bool
}

func (s *Store) CreateCatalogItem(ctx context.Context, it *models.CatalogItem) error {
	return wrapErr(s.db.WithContext(ctx).Create(it).Error, "catalog_item")
}

func (s *Store) GetCatalogItem(ctx context.Context, id uint) (*models.CatalogItem, error) {
	var it models.CatalogItem
	if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, wrapErr(err, "catalog_item")
	}
	return &it, nil
}

func (s *Store) ListCatalogItems(ctx context.Context, f CatalogFilter, page PageRequest) ([]models.CatalogItem, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.CatalogItem{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if f.Search != "" {
		p := searchPattern(f.Search)
		q = q.Where("name LIKE ? OR description LIKE ?", p, p)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "catalog_item")
	}
	var out []models.CatalogItem
	if err := page.apply(q.Order("category, name")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "catalog_item")
	}
	return out, total, nil
}
