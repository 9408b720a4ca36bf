package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
)

type QuoteFilter struct {
	Search        string
	Status        models.QuoteStatus
	CustomerID    uint
	OpportunityID uint
}

func (s *Store) CreateQuote(ctx context.Context, q *models.Quote) error {
	return wrapErr(s.db.WithContext(ctx).Create(q).Error, "quote")
}

// GetQuote loads a quote with its items embedded.
func (s *Store) GetQuote(ctx context.Context, id uint) (*models.Quote, error) {
	var q models.Quote
	if err := s.db.WithContext(ctx).Preload("Items").First(&q, id).Error; err != nil {
		return nil, wrapErr(err, "quote")
	}
	return &q, nil
}

func (s *Store) ListQuotes(ctx context.Context, f QuoteFilter, page PageRequest) ([]models.Quote, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Quote{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.OpportunityID != 0 {
		q = q.Where("opportunity_id = ?", f.OpportunityID)
	}
	if f.Search != "" {
		q = q.Where("notes LIKE ?", searchPattern(f.Search))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "quote")
	}
	var out []models.Quote
	if err := page.apply(q.Preload("Items").Order("created_at desc")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "quote")
	}
	return out, total, nil
}

// DeleteQuote cascades to the quote's items. A quote referenced by a project
// cannot be deleted.
func (s *Store) DeleteQuote(ctx context.Context, id uint) error {
	return s.Tx(ctx, func(tx *Store) error {
		var q models.Quote
		if err := tx.db.First(&q, id).Error; err != nil {
			return wrapErr(err, "quote")
		}
		var n int64
		if err := tx.db.Model(&models.Project{}).Where("quote_id = ?", id).Count(&n).Error; err != nil {
			return wrapErr(err, "quote")
		}
		if n > 0 {
			return domain.ReferentialConflict("quote_referenced_by_projects")
		}
		if err := tx.db.Where("quote_id = ?", id).Delete(&models.QuoteItem{}).Error; err != nil {
			return wrapErr(err, "quote_item")
		}
		return wrapErr(tx.db.Delete(&models.Quote{}, id).Error, "quote")
	})
}

func (s *Store) GetQuoteItem(ctx context.Context, id uint) (*models.QuoteItem, error) {
	var it models.QuoteItem
	if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, wrapErr(err, "quote_item")
	}
	return &it, nil
}

func (s *Store) CreateQuoteItem(ctx context.Context, it *models.QuoteItem) error {
	return wrapErr(s.db.WithContext(ctx).Create(it).Error, "quote_item")
}

func (s *Store) DeleteQuoteItem(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.QuoteItem{}, id)
	if res.Error != nil {
		return wrapErr(res.Error, "quote_item")
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("quote_item")
	}
	return nil
}

// UpdateQuoteTotal rewrites the derived total.
func (s *Store) UpdateQuoteTotal(ctx context.Context, quoteID uint, total decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&models.Quote{}).Where("id = ?", quoteID).Update("total", total)
	if res.Error != nil {
		return wrapErr(res.Error, "quote")
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("quote")
	}
	return nil
}

// SwapQuoteStatus is the compare-and-swap for quote status transitions.
func (s *Store) SwapQuoteStatus(ctx context.Context, id uint, from, to models.QuoteStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Quote{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, wrapErr(res.Error, "quote")
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) CountQuotesByStatus(ctx context.Context, status models.QuoteStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Quote{}).Where("status = ?", status).Count(&n).Error
	if err != nil {
		return 0, wrapErr(err, "quote")
	}
	return n, nil
}
