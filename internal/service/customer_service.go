// internal/service/customer_service.go
package service

import (
    "errors"
    "log"
    "time"

    "golang.org/x/crypto/bcrypt"

    appErrors "github.com/unclebandit/customer-service-backend/internal/errors"
    "github.com/unclebandit/customer-service-backend/internal/metrics"
    "github.com/unclebandit/customer-service-backend/internal/model"
    "github.com/unclebandit/customer-service-backend/internal/queue"
    "github.com/unclebandit/customer-service-backend/internal/repository"
)

const (
    maxSearchLength = 255
    maxPageSize     = 100
)

type CustomerService struct {
    Repo    repository.CustomerRepositoryInterface
    Queue   queue.Queue
    Metrics *metrics.Metrics
}

// CreateCustomer validates the request, hashes the credential and persists
// the record. The upstream system stored raw passwords; that is not carried
// over here.
func (s *CustomerService) CreateCustomer(in *model.CustomerCreate) (*model.Customer, error) {
    if in.Email == "" {
        return nil, appErrors.NewValidation("email is required")
    }
    if in.Password == "" {
        return nil, appErrors.NewValidation("password is required")
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }

    customer := &model.Customer{
        Email:           in.Email,
        PasswordHash:    string(hash),
        FirstName:       in.FirstName,
        LastName:        in.LastName,
        PhoneNumber:     in.PhoneNumber,
        ShippingAddress: in.ShippingAddress,
    }

    if err := s.Repo.Create(customer); err != nil {
        var dup *appErrors.ErrDuplicateEmail
        if errors.As(err, &dup) {
            s.observeCreation(metrics.OutcomeDuplicateEmail)
        } else {
            s.observeCreation(metrics.OutcomeDBError)
        }
        return nil, err
    }

    s.observeCreation(metrics.OutcomeSuccess)
    s.publish(model.EventCustomerCreated, customer)
    return customer, nil
}

// ListCustomers returns a page of customers after bounds-checking the
// pagination inputs.
func (s *CustomerService) ListCustomers(skip, limit int, search string) ([]model.Customer, error) {
    if skip < 0 {
        return nil, appErrors.NewValidation("skip must be >= 0")
    }
    if limit < 1 || limit > maxPageSize {
        return nil, appErrors.NewValidation("limit must be between 1 and 100")
    }
    if len(search) > maxSearchLength {
        return nil, appErrors.NewValidation("search term too long")
    }
    return s.Repo.List(skip, limit, search)
}

func (s *CustomerService) GetCustomer(id int) (*model.Customer, error) {
    return s.Repo.GetByID(id)
}

// UpdateCustomer merges the supplied fields into the stored record. A
// password field in the patch is refused and logged, never written.
func (s *CustomerService) UpdateCustomer(id int, patch *model.CustomerPatch) (*model.Customer, error) {
    if patch.Password != nil {
        log.Printf("refusing password update via general endpoint for customer %d", id)
        patch.Password = nil
    }

    customer, err := s.Repo.Update(id, patch)
    if err != nil {
        return nil, err
    }

    s.publish(model.EventCustomerUpdated, customer)
    return customer, nil
}

// DeleteCustomer removes the record. The row is read first so the audit
// event can carry the email.
func (s *CustomerService) DeleteCustomer(id int) error {
    customer, err := s.Repo.GetByID(id)
    if err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            s.observeDeletion(metrics.OutcomeNotFound)
        } else {
            s.observeDeletion(metrics.OutcomeDBError)
        }
        return err
    }

    if err := s.Repo.Delete(id); err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            s.observeDeletion(metrics.OutcomeNotFound)
        } else {
            s.observeDeletion(metrics.OutcomeDBError)
        }
        return err
    }

    s.observeDeletion(metrics.OutcomeSuccess)
    s.publish(model.EventCustomerDeleted, customer)
    return nil
}

// publish emits a lifecycle event. Failures are logged and never fail the
// originating request.
func (s *CustomerService) publish(eventType string, c *model.Customer) {
    if s.Queue == nil {
        return
    }
    event := model.CustomerEvent{
        Type:       eventType,
        CustomerID: c.ID,
        Email:      c.Email,
        OccurredAt: time.Now(),
    }
    if err := s.Queue.Publish(queue.TopicCustomerEvents, event); err != nil {
        log.Printf("failed to publish %s for customer %d: %v", eventType, c.ID, err)
    }
}

func (s *CustomerService) observeCreation(outcome string) {
    if s.Metrics != nil {
        s.Metrics.ObserveCreation(outcome)
    }
}

func (s *CustomerService) observeDeletion(outcome string) {
    if s.Metrics != nil {
        s.Metrics.ObserveDeletion(outcome)
    }
}
