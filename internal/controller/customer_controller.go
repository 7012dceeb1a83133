// internal/controller/customer_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/unclebandit/customer-service-backend/internal/errors"
    "github.com/unclebandit/customer-service-backend/internal/model"
    "github.com/unclebandit/customer-service-backend/internal/service"
)

type CustomerController struct {
    CustomerService *service.CustomerService
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
    var body model.CustomerCreate
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    log.Printf("creating customer with email: %s", body.Email)

    customer, err := c.CustomerService.CreateCustomer(&body)
    if err != nil {
        writeError(w, err, "could not create customer", body.Email)
        return
    }

    log.Printf("customer %q (ID: %d) created", customer.Email, customer.ID)
    writeJSON(w, http.StatusCreated, customer)
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
    skip := 0
    limit := 100
    var err error

    if v := r.URL.Query().Get("skip"); v != "" {
        if skip, err = strconv.Atoi(v); err != nil {
            http.Error(w, "skip must be an integer", http.StatusBadRequest)
            return
        }
    }
    if v := r.URL.Query().Get("limit"); v != "" {
        if limit, err = strconv.Atoi(v); err != nil {
            http.Error(w, "limit must be an integer", http.StatusBadRequest)
            return
        }
    }
    search := r.URL.Query().Get("search")

    log.Printf("listing customers with skip=%d, limit=%d, search=%q", skip, limit, search)

    customers, err := c.CustomerService.ListCustomers(skip, limit, search)
    if err != nil {
        writeError(w, err, "could not list customers", "")
        return
    }

    writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
    id, ok := customerID(w, r)
    if !ok {
        return
    }

    customer, err := c.CustomerService.GetCustomer(id)
    if err != nil {
        writeError(w, err, "could not fetch customer", strconv.Itoa(id))
        return
    }

    writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
    id, ok := customerID(w, r)
    if !ok {
        return
    }

    var patch model.CustomerPatch
    if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    log.Printf("updating customer %d", id)

    customer, err := c.CustomerService.UpdateCustomer(id, &patch)
    if err != nil {
        writeError(w, err, "could not update customer", strconv.Itoa(id))
        return
    }

    log.Printf("customer %d updated", id)
    writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
    id, ok := customerID(w, r)
    if !ok {
        return
    }

    log.Printf("deleting customer %d", id)

    if err := c.CustomerService.DeleteCustomer(id); err != nil {
        writeError(w, err, "could not delete customer", strconv.Itoa(id))
        return
    }

    log.Printf("customer %d deleted", id)
    w.WriteHeader(http.StatusNoContent)
}

func customerID(w http.ResponseWriter, r *http.Request) (int, bool) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid customer id", http.StatusBadRequest)
        return 0, false
    }
    return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses: validation and duplicate
// email to 400, not-found to 404, anything else to 500 with a generic
// message. The subject (email or id) goes into the log, not the response.
func writeError(w http.ResponseWriter, err error, fallback, subject string) {
    var validation *appErrors.ErrValidation
    var duplicate *appErrors.ErrDuplicateEmail
    var notFound *appErrors.ErrCustomerNotFound

    switch {
    case errors.As(err, &validation):
        log.Printf("validation rejected (%s): %v", subject, err)
        http.Error(w, err.Error(), http.StatusBadRequest)
    case errors.As(err, &duplicate):
        log.Printf("duplicate email (%s): %v", subject, err)
        http.Error(w, err.Error(), http.StatusBadRequest)
    case errors.As(err, &notFound):
        log.Printf("customer not found (%s)", subject)
        http.Error(w, "Customer not found", http.StatusNotFound)
    default:
        log.Printf("%s (%s): %v", fallback, subject, err)
        http.Error(w, fallback, http.StatusInternalServerError)
    }
}
