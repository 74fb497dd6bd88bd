package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestCorrelationIDPropagatesHeader(t *testing.T) {
	var sawHeader string
	handler := CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHeader = w.Header().Get(correlationHeader)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlationHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if sawHeader != "req-42" {
		t.Fatalf("expected header req-42 in handler, got %q", sawHeader)
	}
	if got := rec.Header().Get(correlationHeader); got != "req-42" {
		t.Fatalf("expected response header req-42, got %q", got)
	}
}

func TestCorrelationIDGeneratesWhenMissing(t *testing.T) {
	handler := CorrelationID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	got := rec.Header().Get(correlationHeader)
	if got == "" {
		t.Fatal("expected a generated correlation id")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected a uuid correlation id, got %q: %v", got, err)
	}
}
