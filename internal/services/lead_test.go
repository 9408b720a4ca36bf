package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

func seedLead(t *testing.T, s *store.Store, status models.LeadStatus) models.Lead {
	t.Helper()
	l := models.Lead{
		Name:   "Carla Ruiz",
		Phone:  "555-0142",
		Email:  "carla@example.com",
		Source: models.SourceIG,
		Status: status,
		Notes:  "pergola en patio",
	}
	require.NoError(t, s.CreateLead(context.Background(), &l))
	return l
}

func TestLeadConvertCreatesCustomer(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLeadService(st)
	lead := seedLead(t, st, models.LeadQualified)

	converted, customer, err := svc.Convert(ctx, lead.ID)
	require.NoError(t, err)
	require.Equal(t, models.LeadConverted, converted.Status)
	require.NotNil(t, converted.CustomerID)
	require.Equal(t, customer.ID, *converted.CustomerID)

	// contact fields carry over
	require.Equal(t, lead.Name, customer.Name)
	require.Equal(t, lead.Phone, customer.Phone)
	require.Equal(t, lead.Email, customer.Email)
	require.Equal(t, models.CustomerIndividual, customer.Type)

	got, err := st.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, lead.Name, got.Name)
}

func TestLeadConvertIsNotRepeatable(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLeadService(st)
	lead := seedLead(t, st, models.LeadNew)

	_, first, err := svc.Convert(ctx, lead.ID)
	require.NoError(t, err)

	_, _, err = svc.Convert(ctx, lead.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// the second attempt created nothing
	_, total, err := st.ListCustomers(ctx, store.CustomerFilter{}, store.PageRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	reloaded, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.CustomerID)
	require.Equal(t, first.ID, *reloaded.CustomerID)
}

func TestLeadConvertRejectsDisqualified(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLeadService(st)
	lead := seedLead(t, st, models.LeadDisqualified)

	_, _, err := svc.Convert(ctx, lead.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, total, err := st.ListCustomers(ctx, store.CustomerFilter{}, store.PageRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
}

func TestLeadCustomerRefIsImmutable(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLeadService(st)
	lead := seedLead(t, st, models.LeadQualified)

	converted, _, err := svc.Convert(ctx, lead.ID)
	require.NoError(t, err)

	other := seedCustomer(t, st)
	update := *converted
	update.CustomerID = &other.ID
	_, err = svc.Update(ctx, &update)
	require.ErrorIs(t, err, domain.ErrValidation)

	update = *converted
	update.CustomerID = nil
	_, err = svc.Update(ctx, &update)
	require.ErrorIs(t, err, domain.ErrValidation)

	// other fields still editable after conversion
	update = *converted
	update.Notes = "prefiere llamadas por la tarde"
	got, err := svc.Update(ctx, &update)
	require.NoError(t, err)
	require.Equal(t, "prefiere llamadas por la tarde", got.Notes)
	require.Equal(t, converted.CustomerID, got.CustomerID)
}

func TestLeadUpdateRequiresName(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLeadService(st)
	lead := seedLead(t, st, models.LeadNew)

	for _, name := range []string{"", "   "} {
		update := lead
		update.Name = name
		_, err := svc.Update(ctx, &update)
		require.ErrorIs(t, err, domain.ErrValidation, "name=%q", name)
	}

	// nothing was persisted
	reloaded, err := st.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	require.Equal(t, lead.Name, reloaded.Name)
}

func TestLeadUpdateRejectsUnknownEnums(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLeadService(st)
	lead := seedLead(t, st, models.LeadNew)

	update := lead
	update.Source = models.LeadSource("CARRIER_PIGEON")
	_, err := svc.Update(ctx, &update)
	require.ErrorIs(t, err, domain.ErrValidation)

	update = lead
	update.Status = models.LeadStatus("FROZEN")
	_, err = svc.Update(ctx, &update)
	require.ErrorIs(t, err, domain.ErrValidation)
}
