package repository

import (
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/unclebandit/customer-service-backend/internal/errors"
    "github.com/unclebandit/customer-service-backend/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
    Create(c *model.Customer) error
    List(offset, limit int, search string) ([]model.Customer, error)
    GetByID(id int) (*model.Customer, error)
    Update(id int, patch *model.CustomerPatch) (*model.Customer, error)
    Delete(id int) error
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
    DB *sql.DB
}

const customerColumns = `customer_id, email, password_hash, first_name, last_name, phone_number, shipping_address, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *model.Customer) error {
    return row.Scan(
        &c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
        &c.PhoneNumber, &c.ShippingAddress, &c.CreatedAt, &c.UpdatedAt,
    )
}

// Create inserts a new customer and fills in the generated id and timestamps.
// A unique-constraint rejection on email comes back as ErrDuplicateEmail.
func (r *CustomerRepository) Create(c *model.Customer) error {
    query := `
        INSERT INTO customers (email, password_hash, first_name, last_name, phone_number, shipping_address)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING customer_id, created_at
    `
    err := r.DB.QueryRow(
        query,
        c.Email, c.PasswordHash, c.FirstName, c.LastName, c.PhoneNumber, c.ShippingAddress,
    ).Scan(&c.ID, &c.CreatedAt)
    if err != nil {
        if isUniqueViolation(err) {
            return appErrors.NewDuplicateEmail(c.Email)
        }
        return err
    }
    return nil
}

// List fetches a page of customers ordered by id. A non-empty search term is
// matched case-insensitively against first name, last name and email.
func (r *CustomerRepository) List(offset, limit int, search string) ([]model.Customer, error) {
    query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if search != "" {
        query += fmt.Sprintf(
            " AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
            argPos, argPos, argPos,
        )
        args = append(args, "%"+search+"%")
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY customer_id LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    customers := []model.Customer{}
    for rows.Next() {
        var c model.Customer
        if err := scanCustomer(rows, &c); err != nil {
            return nil, err
        }
        customers = append(customers, c)
    }
    return customers, rows.Err()
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
    query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id=$1`

    var c model.Customer
    if err := scanCustomer(r.DB.QueryRow(query, id), &c); err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCustomerNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}

// Update merges the patch into the stored row: only non-nil fields make it
// into the SET clause. The write itself carries the uniqueness check, so an
// email collision surfaces here rather than in a racy pre-check.
func (r *CustomerRepository) Update(id int, patch *model.CustomerPatch) (*model.Customer, error) {
    query, args := buildUpdateQuery(id, patch)

    var c model.Customer
    if err := scanCustomer(r.DB.QueryRow(query, args...), &c); err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCustomerNotFound(id)
        }
        if isUniqueViolation(err) {
            email := ""
            if patch.Email != nil {
                email = *patch.Email
            }
            return nil, appErrors.NewDuplicateEmail(email)
        }
        return nil, err
    }
    return &c, nil
}

func buildUpdateQuery(id int, patch *model.CustomerPatch) (string, []interface{}) {
    query := `UPDATE customers SET updated_at=$1`
    args := []interface{}{time.Now()}
    argPos := 2

    set := func(column string, value interface{}) {
        query += fmt.Sprintf(", %s=$%d", column, argPos)
        args = append(args, value)
        argPos++
    }

    if patch.Email != nil {
        set("email", *patch.Email)
    }
    if patch.FirstName != nil {
        set("first_name", *patch.FirstName)
    }
    if patch.LastName != nil {
        set("last_name", *patch.LastName)
    }
    if patch.PhoneNumber != nil {
        set("phone_number", *patch.PhoneNumber)
    }
    if patch.ShippingAddress != nil {
        set("shipping_address", *patch.ShippingAddress)
    }

    query += fmt.Sprintf(" WHERE customer_id=$%d RETURNING ", argPos) + customerColumns
    args = append(args, id)
    return query, args
}

// Delete removes the row outright. No soft delete.
func (r *CustomerRepository) Delete(id int) error {
    res, err := r.DB.Exec(`DELETE FROM customers WHERE customer_id=$1`, id)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return appErrors.NewCustomerNotFound(id)
    }
    return nil
}

func isUniqueViolation(err error) bool {
    var pqErr *pq.Error
    return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
