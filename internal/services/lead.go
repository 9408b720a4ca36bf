package services

import (
	"context"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
	"github.com/mestizo/crm-service/internal/validation"
)

// LeadService owns lead qualification and conversion.
type LeadService struct {
	store *store.Store
}

func NewLeadService(s *store.Store) *LeadService {
	return &LeadService{store: s}
}

// Convert creates a customer from the lead's fields and marks the lead
// CONVERTED, setting its customer reference once. A converted or disqualified
// lead cannot be converted (again).
func (s *LeadService) Convert(ctx context.Context, leadID uint) (*models.Lead, *models.Customer, error) {
	var customer models.Customer
	var converted models.Lead
	err := s.store.Tx(ctx, func(tx *store.Store) error {
		lead, err := tx.GetLead(ctx, leadID)
		if err != nil {
			return err
		}
		if lead.Status == models.LeadConverted || lead.CustomerID != nil {
			return domain.InvalidTransition("lead_already_converted")
		}
		if lead.Status == models.LeadDisqualified {
			return domain.InvalidTransition("lead_disqualified")
		}
		customer = models.Customer{
			Type:  models.CustomerIndividual,
			Name:  lead.Name,
			Phone: lead.Phone,
			Email: lead.Email,
			Notes: lead.Notes,
		}
		if err := tx.CreateCustomer(ctx, &customer); err != nil {
			return err
		}
		lead.Status = models.LeadConverted
		lead.CustomerID = &customer.ID
		if err := tx.UpdateLead(ctx, lead); err != nil {
			return err
		}
		converted = *lead
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &converted, &customer, nil
}

// Update applies field updates while keeping the customer reference
// immutable once set.
func (s *LeadService) Update(ctx context.Context, updated *models.Lead) (*models.Lead, error) {
	current, err := s.store.GetLead(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	if current.CustomerID != nil &&
		(updated.CustomerID == nil || *updated.CustomerID != *current.CustomerID) {
		return nil, domain.ValidationField("customer_id", "immutable_once_set")
	}
	v := validation.Violations{}
	validation.Required("name", updated.Name, v)
	if !updated.Source.Valid() {
		v["source"] = "unknown_source"
	}
	if !updated.Status.Valid() {
		v["status"] = "unknown_status"
	}
	if !v.Empty() {
		return nil, domain.Validation(v)
	}
	updated.CreatedAt = current.CreatedAt
	if err := s.store.UpdateLead(ctx, updated); err != nil {
		return nil, err
	}
	return s.store.GetLead(ctx, updated.ID)
}
