package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	crmdb "github.com/mestizo/crm-service/internal/db"
	"github.com/mestizo/crm-service/internal/models"
	"github.com/mestizo/crm-service/internal/services"
	"github.com/mestizo/crm-service/internal/store"
)

func setupQuoteTestStore(t *testing.T) *store.Store {
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

func seedQuoteCustomer(t *testing.T, s *store.Store) models.Customer {
	t.Helper()
	c := models.Customer{Type: models.CustomerIndividual, Name: "Marta Vega", Phone: "555-0177"}
	if err := s.CreateCustomer(context.Background(), &c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestQuoteLifecycleOverHTTP(t *testing.T) {
	st := setupQuoteTestStore(t)
	h := NewQuoteHandler(st, services.NewQuoteService(st))
	customer := seedQuoteCustomer(t, st)

	w := postJSON(t, h.Create, "/quotes", fmt.Sprintf(`{"customer_id":%d,"notes":"terraza"}`, customer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	id := int(created["id"].(float64))
	if created["status"] != string(models.QuoteDraft) {
		t.Fatalf("expected DRAFT got %v", created["status"])
	}

	// two items: 2 x 500 + 1 x 250 = 1250
	w = postJSON(t, h.AddItem, "/quotes/items",
		fmt.Sprintf(`{"quote_id":%d,"name":"Pergola","item_type":"PRODUCT","qty":"2","unit_price":"500"}`, id))
	if w.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	w = postJSON(t, h.AddItem, "/quotes/items",
		fmt.Sprintf(`{"quote_id":%d,"name":"Instalacion","item_type":"SERVICE","qty":"1","unit_price":"250"}`, id))
	if w.Code != http.StatusCreated {
		t.Fatalf("add item 2: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var quote map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &quote)
	if quote["total"] != "1250" {
		t.Fatalf("expected total 1250 got %v", quote["total"])
	}

	// DRAFT cannot jump straight to ACCEPTED
	w = postJSON(t, h.SetStatus, "/quotes/status?id="+strconv.Itoa(id), `{"status":"ACCEPTED"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for DRAFT->ACCEPTED got %d", w.Code)
	}

	w = postJSON(t, h.SetStatus, "/quotes/status?id="+strconv.Itoa(id), `{"status":"SENT"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("send: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// items are locked once the quote leaves DRAFT
	w = postJSON(t, h.AddItem, "/quotes/items",
		fmt.Sprintf(`{"quote_id":%d,"name":"Extra","qty":"1","unit_price":"10"}`, id))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 adding item to SENT quote, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(t, h.SetStatus, "/quotes/status?id="+strconv.Itoa(id), `{"status":"ACCEPTED"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// terminal status is permanent
	w = postJSON(t, h.SetStatus, "/quotes/status?id="+strconv.Itoa(id), `{"status":"DRAFT"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 reopening accepted quote, got %d", w.Code)
	}

	// total survived the lifecycle
	req := httptest.NewRequest(http.MethodGet, "/quotes/get?id="+strconv.Itoa(id), nil)
	getW := httptest.NewRecorder()
	h.Get(getW, req)
	if getW.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", getW.Code)
	}
	_ = json.Unmarshal(getW.Body.Bytes(), &quote)
	if quote["total"] != "1250" {
		t.Fatalf("expected total 1250 after lifecycle got %v", quote["total"])
	}
	items, _ := quote["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 embedded items got %d", len(items))
	}
}

func TestQuoteCreateRejectsUnknownCustomer(t *testing.T) {
	st := setupQuoteTestStore(t)
	h := NewQuoteHandler(st, services.NewQuoteService(st))

	w := postJSON(t, h.Create, "/quotes", `{"customer_id":999}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestQuoteDeleteRefusedWhenProjectReferences(t *testing.T) {
	st := setupQuoteTestStore(t)
	h := NewQuoteHandler(st, services.NewQuoteService(st))
	customer := seedQuoteCustomer(t, st)

	q := models.Quote{CustomerID: customer.ID, Status: models.QuoteAccepted}
	if err := st.CreateQuote(context.Background(), &q); err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	p := models.Project{CustomerID: customer.ID, QuoteID: &q.ID, Title: "Obra terraza", Status: models.ProjectPlanning}
	if err := st.CreateProject(context.Background(), &p); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	w := postJSON(t, h.Delete, "/quotes/delete?id="+strconv.Itoa(int(q.ID)), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/quotes/get?id="+strconv.Itoa(int(q.ID)), nil)
	getW := httptest.NewRecorder()
	h.Get(getW, req)
	if getW.Code != http.StatusOK {
		t.Fatalf("expected quote to survive, got %d", getW.Code)
	}
}
