package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/store"
)

// ImportService turns pre-parsed tabular rows into customers or leads. Rows
// are independent: a bad row is reported and the batch continues. Nothing is
// deduplicated; re-importing the same rows creates duplicates.
type ImportService struct {
	store *store.Store
}

func NewImportService(s *store.Store) *ImportService {
	return &ImportService{store: s}
}

// Header aliases are accepted in English and Spanish, matching the files the
// business actually uploads.
var fieldAliases = map[string][]string{
	"name":   {"name", "nombre"},
	"phone":  {"phone", "telefono"},
	"email":  {"email"},
	"type":   {"type", "tipo"},
	"notes":  {"notes", "notas"},
	"source": {"source", "fuente"},
}

// maxReportedErrors caps the error list in the report; counts stay exact.
const maxReportedErrors = 10

type ImportResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

func (r *ImportResult) addError(rowNum int, reason string) {
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, fmt.Sprintf("fila %d: %s", rowNum, reason))
	}
}

func field(row map[string]string, key string) string {
	for _, alias := range fieldAliases[key] {
		for k, v := range row {
			if strings.EqualFold(strings.TrimSpace(k), alias) {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// ImportCustomers processes rows sequentially. Row numbering starts at 2: the
// header of the source file is row 1.
func (s *ImportService) ImportCustomers(ctx context.Context, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 2
		name := field(row, "name")
		if name == "" {
			result.addError(rowNum, "name is required")
			continue
		}
		typ := models.CustomerType(strings.ToUpper(field(row, "type")))
		if typ == "" {
			typ = models.CustomerIndividual
		}
		if !typ.Valid() {
			result.addError(rowNum, fmt.Sprintf("unknown type %q", field(row, "type")))
			continue
		}
		c := models.Customer{
			Type:  typ,
			Name:  name,
			Phone: field(row, "phone"),
			Email: field(row, "email"),
			Notes: field(row, "notes"),
		}
		if err := s.store.CreateCustomer(ctx, &c); err != nil {
			result.addError(rowNum, err.Error())
			continue
		}
		result.Created++
	}
	return result, nil
}

// ImportLeads mirrors ImportCustomers for leads.
func (s *ImportService) ImportLeads(ctx context.Context, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 2
		name := field(row, "name")
		if name == "" {
			result.addError(rowNum, "name is required")
			continue
		}
		source := models.LeadSource(strings.ToUpper(field(row, "source")))
		if source == "" {
			source = models.SourceOther
		}
		if !source.Valid() {
			result.addError(rowNum, fmt.Sprintf("unknown source %q", field(row, "source")))
			continue
		}
		l := models.Lead{
			Name:   name,
			Phone:  field(row, "phone"),
			Email:  field(row, "email"),
			Source: source,
			Status: models.LeadNew,
			Notes:  field(row, "notes"),
		}
		if err := s.store.CreateLead(ctx, &l); err != nil {
			result.addError(rowNum, err.Error())
			continue
		}
		result.Created++
	}
	return result, nil
}
