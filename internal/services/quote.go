package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

// QuoteService owns line totals and the quote status lifecycle. Every item
// mutation recomputes the quote total inside the same transaction, so a caller
// can never observe a stale total.
type QuoteService struct {
	store *store.Store
}

func NewQuoteService(s *store.Store) *QuoteService {
	return &QuoteService{store: s}
}

// QuoteItemInput describes an item to add. When CatalogItemID is set, the
// catalog supplies name, type, and (if UnitPrice is nil) the reference price.
type QuoteItemInput struct {
	ItemType      models.QuoteItemType
	Name          string
	Description   string
	Qty           decimal.Decimal
	UnitPrice     *decimal.Decimal
	CatalogItemID uint
}

// AddItem appends a line item to a DRAFT quote and recomputes the total.
func (s *QuoteService) AddItem(ctx context.Context, quoteID uint, input QuoteItemInput) (*models.Quote, error) {
	item := models.QuoteItem{
		QuoteID:     quoteID,
		ItemType:    input.ItemType,
		Name:        input.Name,
		Description: input.Description,
		Qty:         input.Qty,
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if input.CatalogItemID != 0 {
		cat, err := s.store.GetCatalogItem(ctx, input.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if !cat.Active {
			return nil, domain.ValidationField("catalog_item_id", "inactive")
		}
		id := cat.ID
		item.CatalogItemID = &id
		if item.Name == "" {
			item.Name = cat.Name
		}
		if item.ItemType == "" {
			item.ItemType = cat.Type
		}
		if input.UnitPrice == nil {
			item.UnitPrice = cat.PriceRef
		}
	}
	if item.ItemType == "" {
		item.ItemType = models.ItemProduct
	}

	v := validation.Violations{}
	validation.Required("name", item.Name, v)
	if !item.ItemType.Valid() {
		v["item_type"] = "unknown_type"
	}
	validation.PositiveDecimal("qty", item.Qty, v)
	validation.NonNegativeDecimal("unit_price", item.UnitPrice, v)
	if !v.Empty() {
		return nil, domain.Validation(v)
	}

	err := s.store.Tx(ctx, func(tx *store.Store) error {
		quote, err := tx.GetQuote(ctx, quoteID)
		if err != nil {
			return err
		}
		if quote.Status != models.QuoteDraft {
			return domain.InvalidTransition("quote_not_editable")
		}
		if err := tx.CreateQuoteItem(ctx, &item); err != nil {
			return err
		}
		return recomputeTotal(ctx, tx, quoteID)
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetQuote(ctx, quoteID)
}

// RemoveItem deletes a line item from a DRAFT quote and recomputes the total.
func (s *QuoteService) RemoveItem(ctx context.Context, itemID uint) (*models.Quote, error) {
	item, err := s.store.GetQuoteItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	quoteID := item.QuoteID
	err = s.store.Tx(ctx, func(tx *store.Store) error {
		quote, err := tx.GetQuote(ctx, quoteID)
		if err != nil {
			return err
		}
		if quote.Status != models.QuoteDraft {
			return domain.InvalidTransition("quote_not_editable")
		}
		if err := tx.DeleteQuoteItem(ctx, itemID); err != nil {
			return err
		}
		return recomputeTotal(ctx, tx, quoteID)
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetQuote(ctx, quoteID)
}

// SetStatus moves a quote along the strict order DRAFT -> SENT -> {ACCEPTED,
// REJECTED}. Skips and reversals fail; setting the current status is a no-op.
func (s *QuoteService) SetStatus(ctx context.Context, quoteID uint, target models.QuoteStatus) (*models.Quote, error) {
	if !target.Valid() {
		return nil, domain.ValidationField("status", "unknown_status")
	}
	quote, err := s.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status == target {
		return quote, nil
	}
	if !quote.Status.CanTransition(target) {
		return nil, domain.InvalidTransition("quote_status_order")
	}
	swapped, err := s.store.SwapQuoteStatus(ctx, quoteID, quote.Status, target)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, domain.InvalidTransition("quote_status_changed_concurrently")
	}
	return s.store.GetQuote(ctx, quoteID)
}

// RecomputeTotal re-derives the total from the items. Item mutations already
// keep the total current; this is the repair/verification entry point.
func (s *QuoteService) RecomputeTotal(ctx context.Context, quoteID uint) (*models.Quote, error) {
	err := s.store.Tx(ctx, func(tx *store.Store) error {
		return recomputeTotal(ctx, tx, quoteID)
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetQuote(ctx, quoteID)
}

func recomputeTotal(ctx context.Context, tx *store.Store, quoteID uint) error {
	quote, err := tx.GetQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, it := range quote.Items {
		total = total.Add(it.LineTotal())
	}
	return tx.UpdateQuoteTotal(ctx, quoteID, total)
}
