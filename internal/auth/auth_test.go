package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token := SignToken(42)
	uid, ok := ParseToken(token)
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	cases := []string{
		"",
		"42",
		"42.",
		"42.bogus",
		SignToken(42) + "x",
		"43." + SignToken(42)[len("42."):], // signature for a different uid
	}
	for _, tok := range cases {
		if _, ok := ParseToken(tok); ok {
			t.Fatalf("expected rejection of %q", tok)
		}
	}
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	var gotUID uint
	var gotOK bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Middleware(RequireAuth(inner))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+SignToken(7))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200 got %d", w.Code)
	}
	if !gotOK || gotUID != 7 {
		t.Fatalf("expected uid 7 in context, got %d ok=%v", gotUID, gotOK)
	}
}
