package service_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/customer-service-backend/internal/errors"
	"github.com/unclebandit/customer-service-backend/internal/model"
	"github.com/unclebandit/customer-service-backend/internal/queue"
	"github.com/unclebandit/customer-service-backend/internal/service"
)

// recordingRepo captures the arguments the service hands to the repository.
type recordingRepo struct {
	created   *model.Customer
	lastPatch *model.CustomerPatch
	stored    model.Customer
}

func (r *recordingRepo) Create(c *model.Customer) error {
	c.ID = 1
	r.created = c
	return nil
}

func (r *recordingRepo) List(offset, limit int, search string) ([]model.Customer, error) {
	return []model.Customer{}, nil
}

func (r *recordingRepo) GetByID(id int) (*model.Customer, error) {
	copied := r.stored
	copied.ID = id
	return &copied, nil
}

func (r *recordingRepo) Update(id int, patch *model.CustomerPatch) (*model.Customer, error) {
	r.lastPatch = patch
	copied := r.stored
	copied.ID = id
	return &copied, nil
}

func (r *recordingRepo) Delete(id int) error { return nil }

func strPtr(s string) *string { return &s }

func TestCreateCustomerHashesPassword(t *testing.T) {
	repo := &recordingRepo{}
	svc := &service.CustomerService{Repo: repo}

	customer, err := svc.CreateCustomer(&model.CustomerCreate{
		Email:    "alice@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if customer.PasswordHash == "hunter2" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("hunter2")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := &service.CustomerService{Repo: &recordingRepo{}}

	var validation *appErrors.ErrValidation

	_, err := svc.CreateCustomer(&model.CustomerCreate{Password: "x"})
	if !errors.As(err, &validation) {
		t.Errorf("expected validation error for missing email, got %v", err)
	}

	_, err = svc.CreateCustomer(&model.CustomerCreate{Email: "a@b.com"})
	if !errors.As(err, &validation) {
		t.Errorf("expected validation error for missing password, got %v", err)
	}
}

func TestListCustomersBounds(t *testing.T) {
	svc := &service.CustomerService{Repo: &recordingRepo{}}

	cases := []struct {
		skip, limit int
		wantErr     bool
	}{
		{0, 1, false},
		{0, 100, false},
		{5, 50, false},
		{-1, 10, true},
		{0, 0, true},
		{0, 101, true},
	}

	for _, tc := range cases {
		_, err := svc.ListCustomers(tc.skip, tc.limit, "")
		var validation *appErrors.ErrValidation
		got := errors.As(err, &validation)
		if got != tc.wantErr {
			t.Errorf("skip=%d limit=%d: validation error=%v, want %v", tc.skip, tc.limit, got, tc.wantErr)
		}
	}
}

func TestListCustomersSearchLength(t *testing.T) {
	svc := &service.CustomerService{Repo: &recordingRepo{}}

	var validation *appErrors.ErrValidation
	_, err := svc.ListCustomers(0, 10, strings.Repeat("x", 256))
	if !errors.As(err, &validation) {
		t.Errorf("expected validation error for 256-char search, got %v", err)
	}

	if _, err := svc.ListCustomers(0, 10, strings.Repeat("x", 255)); err != nil {
		t.Errorf("255-char search should pass, got %v", err)
	}
}

func TestUpdateCustomerDropsPassword(t *testing.T) {
	repo := &recordingRepo{stored: model.Customer{Email: "a@b.com"}}
	svc := &service.CustomerService{Repo: repo}

	_, err := svc.UpdateCustomer(1, &model.CustomerPatch{
		FirstName: strPtr("X"),
		Password:  strPtr("new-password"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastPatch.Password != nil {
		t.Error("password must be stripped from the patch before it reaches the repository")
	}
	if repo.lastPatch.FirstName == nil || *repo.lastPatch.FirstName != "X" {
		t.Error("first_name should survive the patch")
	}
}

func TestDeleteCustomerPublishesEvent(t *testing.T) {
	repo := &recordingRepo{stored: model.Customer{Email: "a@b.com"}}
	memq := queue.NewInMemoryQueue()

	delivered := make(chan model.CustomerEvent, 1)
	_ = memq.Subscribe(queue.TopicCustomerEvents, func(payload any) error {
		if event, ok := payload.(model.CustomerEvent); ok {
			delivered <- event
		}
		return nil
	})

	svc := &service.CustomerService{Repo: repo, Queue: memq}
	if err := svc.DeleteCustomer(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	event := <-delivered
	if event.Type != model.EventCustomerDeleted {
		t.Errorf("expected %s, got %s", model.EventCustomerDeleted, event.Type)
	}
	if event.CustomerID != 7 {
		t.Errorf("expected customer 7, got %d", event.CustomerID)
	}
	if event.Email != "a@b.com" {
		t.Errorf("expected email in event, got %q", event.Email)
	}
}
