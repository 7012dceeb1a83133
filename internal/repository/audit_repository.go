package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/customer-service-backend/internal/model"
)

// AuditRepository persists consumed customer lifecycle events for the
// audit worker.
type AuditRepository struct {
    DB *sql.DB
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS customer_audit (
    id          SERIAL PRIMARY KEY,
    event_type  VARCHAR(50) NOT NULL,
    customer_id INT NOT NULL,
    email       VARCHAR(255) NOT NULL,
    payload     TEXT NOT NULL,
    received_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the audit table when missing.
func (r *AuditRepository) EnsureSchema() error {
    _, err := r.DB.Exec(auditSchema)
    return err
}

// Record inserts one consumed event together with its raw payload.
func (r *AuditRepository) Record(event *model.CustomerEvent, payload string) error {
    query := `
        INSERT INTO customer_audit (event_type, customer_id, email, payload, received_at)
        VALUES ($1, $2, $3, $4, $5)
    `
    _, err := r.DB.Exec(query, event.Type, event.CustomerID, event.Email, payload, time.Now())
    return err
}
