// internal/model/customer.go
package model

import "time"

type Customer struct {
    ID              int        `db:"customer_id" json:"customer_id"`
    Email           string     `db:"email" json:"email"`
    PasswordHash    string     `db:"password_hash" json:"-"`
    FirstName       string     `db:"first_name" json:"first_name"`
    LastName        string     `db:"last_name" json:"last_name"`
    PhoneNumber     *string    `db:"phone_number" json:"phone_number,omitempty"`
    ShippingAddress *string    `db:"shipping_address" json:"shipping_address,omitempty"`
    CreatedAt       time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CustomerCreate is the inbound shape for POST /customers/
type CustomerCreate struct {
    Email           string  `json:"email"`
    Password        string  `json:"password"`
    FirstName       string  `json:"first_name"`
    LastName        string  `json:"last_name"`
    PhoneNumber     *string `json:"phone_number"`
    ShippingAddress *string `json:"shipping_address"`
}

// CustomerPatch carries the fields of a partial update. A nil pointer means
// "leave the stored value alone". Password is decoded so a client smuggling
// one in can be detected and ignored; it is never written through this path.
type CustomerPatch struct {
    Email           *string `json:"email"`
    Password        *string `json:"password"`
    FirstName       *string `json:"first_name"`
    LastName        *string `json:"last_name"`
    PhoneNumber     *string `json:"phone_number"`
    ShippingAddress *string `json:"shipping_address"`
}
