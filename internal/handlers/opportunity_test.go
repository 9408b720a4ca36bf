package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	crmdb "github.com/mestizo/crm-service/internal/db"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/services"
	"github.com/mestizo/crm-service/internal/store"
)

func setupOpportunityTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := crmdb.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(gdb)
}

func TestOpportunityCreateAndTransition(t *testing.T) {
	st := setupOpportunityTestStore(t)
	h := NewOpportunityHandler(st, services.NewPipelineService(st))

	customer := models.Customer{Type: models.CustomerCompany, Name: "Jardines SA"}
	if err := st.CreateCustomer(context.Background(), &customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	body := fmt.Sprintf(`{"customer_id":%d,"title":"Muro de contencion","value_estimate":"3200.75"}`, customer.ID)
	w := postJSON(t, h.Create, "/opportunities", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	id := int(created["id"].(float64))
	if created["stage"] != string(models.StageNew) {
		t.Fatalf("expected default stage NEW got %v", created["stage"])
	}

	transition := func(stage string) *httptest.ResponseRecorder {
		return postJSON(t, h.Transition, "/opportunities/transition?id="+strconv.Itoa(id),
			`{"stage":"`+stage+`"}`)
	}

	w = transition("NEGOTIATION")
	if w.Code != http.StatusOK {
		t.Fatalf("NEW->NEGOTIATION: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var opp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &opp)
	if opp["stage"] != "NEGOTIATION" {
		t.Fatalf("expected NEGOTIATION got %v", opp["stage"])
	}

	w = transition("WON")
	if w.Code != http.StatusOK {
		t.Fatalf("NEGOTIATION->WON: expected 200 got %d", w.Code)
	}

	// WON is permanent
	w = transition("LOST")
	if w.Code != http.StatusConflict {
		t.Fatalf("WON->LOST: expected 409 got %d body=%s", w.Code, w.Body.String())
	}

	// self-transition on a terminal stage is still a no-op success
	w = transition("WON")
	if w.Code != http.StatusOK {
		t.Fatalf("WON->WON: expected 200 got %d", w.Code)
	}

	// unknown stage is a validation error, not a conflict
	w = transition("PAUSED")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown stage: expected 400 got %d", w.Code)
	}
}

func TestOpportunityTransitionMissingID(t *testing.T) {
	st := setupOpportunityTestStore(t)
	h := NewOpportunityHandler(st, services.NewPipelineService(st))

	w := postJSON(t, h.Transition, "/opportunities/transition?id=404", `{"stage":"CONTACTED"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestOpportunityCreateValidation(t *testing.T) {
	st := setupOpportunityTestStore(t)
	h := NewOpportunityHandler(st, services.NewPipelineService(st))

	w := postJSON(t, h.Create, "/opportunities", `{"title":"","value_estimate":"-5"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	// a valid body still fails on an unknown customer
	w = postJSON(t, h.Create, "/opportunities", `{"customer_id":999,"title":"Obra"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown customer got %d", w.Code)
	}
}

func TestOpportunityListFiltersByStage(t *testing.T) {
	st := setupOpportunityTestStore(t)
	h := NewOpportunityHandler(st, services.NewPipelineService(st))
	ctx := context.Background()

	customer := models.Customer{Type: models.CustomerIndividual, Name: "Pedro"}
	if err := st.CreateCustomer(ctx, &customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	for _, stage := range []models.OpportunityStage{models.StageNew, models.StageNew, models.StageWon} {
		o := models.Opportunity{CustomerID: customer.ID, Title: "Deal", Stage: stage}
		if err := st.CreateOpportunity(ctx, &o); err != nil {
			t.Fatalf("seed opportunity: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/opportunities?stage=NEW", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var page struct {
		Count   int64                `json:"count"`
		Results []models.Opportunity `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("expected 2 NEW opportunities, got count=%d len=%d", page.Count, len(page.Results))
	}

	req = httptest.NewRequest(http.MethodGet, "/opportunities?stage=BOGUS", nil)
	w = httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown stage filter got %d", w.Code)
	}
}
