// internal/model/customer_event.go
package model

import "time"

// Event types published on the customer_events queue.
const (
    EventCustomerCreated = "customer.created"
    EventCustomerUpdated = "customer.updated"
    EventCustomerDeleted = "customer.deleted"
)

type CustomerEvent struct {
    Type       string    `json:"type"`
    CustomerID int       `json:"customer_id"`
    Email      string    `json:"email"`
    OccurredAt time.Time `json:"occurred_at"`
}
