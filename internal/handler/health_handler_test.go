package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unclebandit/customer-service-backend/internal/handler"
)

func TestHealth(t *testing.T) {
	h := &handler.HealthHandler{ServiceName: "customer-service"}

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res map[string]string
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["status"] != "ok" {
		t.Errorf("expected status ok, got %q", res["status"])
	}
	if res["service"] != "customer-service" {
		t.Errorf("expected service name, got %q", res["service"])
	}
}

func TestRoot(t *testing.T) {
	h := &handler.HealthHandler{ServiceName: "customer-service"}

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res map[string]string
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["message"] == "" {
		t.Error("expected a welcome message")
	}
}
