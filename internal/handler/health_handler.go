// internal/handler/health_handler.go
package handler

import (
    "encoding/json"
    "net/http"
)

// HealthHandler serves the liveness banner and the health probe.
type HealthHandler struct {
    ServiceName string
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]string{
        "message": "Welcome to the Customer Service!",
    })
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]string{
        "status":  "ok",
        "service": h.ServiceName,
    })
}
