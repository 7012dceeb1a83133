// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
    CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
    return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id int) error {
    return &ErrCustomerNotFound{CustomerID: id}
}

// ErrDuplicateEmail signals a unique-constraint rejection on the email column
type ErrDuplicateEmail struct {
    Email string
}

func (e *ErrDuplicateEmail) Error() string {
    return fmt.Sprintf("email %q already registered", e.Email)
}

func NewDuplicateEmail(email string) error {
    return &ErrDuplicateEmail{Email: email}
}

// ErrValidation covers rejected request input (bad pagination bounds,
// missing required fields).
type ErrValidation struct {
    Reason string
}

func (e *ErrValidation) Error() string {
    return e.Reason
}

func NewValidation(reason string) error {
    return &ErrValidation{Reason: reason}
}
