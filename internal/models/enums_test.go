package models

import "testing"

func TestOpportunityStageTransitions(t *testing.T) {
	for _, from := range AllStages {
		for _, to := range AllStages {
			got := from.CanTransition(to)
			want := !from.Terminal()
			if got != want {
				t.Errorf("%s -> %s: got %v want %v", from, to, got, want)
			}
		}
	}
	if StageNew.CanTransition(OpportunityStage("BOGUS")) {
		t.Error("transition to unknown stage must be rejected")
	}
}

func TestQuoteStatusStrictForwardOrder(t *testing.T) {
	allowed := map[[2]QuoteStatus]bool{
		{QuoteDraft, QuoteSent}:    true,
		{QuoteSent, QuoteAccepted}: true,
		{QuoteSent, QuoteRejected}: true,
	}
	statuses := []QuoteStatus{QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected}
	for _, from := range statuses {
		for _, to := range statuses {
			got := from.CanTransition(to)
			if got != allowed[[2]QuoteStatus{from, to}] {
				t.Errorf("%s -> %s: got %v", from, to, got)
			}
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !StageWon.Terminal() || !StageLost.Terminal() {
		t.Error("WON and LOST must be terminal")
	}
	if StageNegotiation.Terminal() {
		t.Error("NEGOTIATION must not be terminal")
	}
	if !QuoteAccepted.Terminal() || !QuoteRejected.Terminal() {
		t.Error("ACCEPTED and REJECTED must be terminal")
	}
	if QuoteSent.Terminal() {
		t.Error("SENT must not be terminal")
	}
}
