package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"transferbff/internal/cache"
	"transferbff/internal/client"
	"transferbff/internal/errors"
	"transferbff/internal/model"
	"transferbff/internal/repository"
)

const customerCacheTTL = 5 * time.Minute

// CustomerService exposes customer operations.
type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
}

type customerService struct {
	repo  repository.CustomerRepository
	cache *cache.Client
}

// NewCustomerService builds a CustomerService with repository and cache.
func NewCustomerService(repo repository.CustomerRepository, cache *cache.Client) CustomerService {
	return &customerService{repo: repo, cache: cache}
}

func (s *customerService) cacheKey(id int64) string {
	return fmt.Sprintf("customer:%d", id)
}

// CreateCustomer stores a new customer with a unique email.
func (s *customerService) CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Surname = strings.TrimSpace(customer.Surname)
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if customer.Name == "" || customer.Surname == "" || customer.Email == "" {
		return nil, errors.ErrInvalidCustomer
	}

	existing, err := s.repo.FindByEmail(ctx, customer.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrCustomerAlreadyExists
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check customer existence: %w", err)
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(customer.ID))

	slog.InfoContext(ctx, "customer created", slog.Int64("customer_id", customer.ID))
	return customer, nil
}

// GetCustomer retrieves a customer by ID with caching.
func (s *customerService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidCustomerID
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Customer
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.CustomerNotFound(id)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	if payload, err := json.Marshal(customer); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, customerCacheTTL)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.List(ctx)
}

// CustomerExists reports whether a customer with the id is stored locally.
func (s *customerService) CustomerExists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check customer existence: %w", err)
	}
	return exists, nil
}

// LocalCustomerDirectory answers existence checks from the local customer table.
type LocalCustomerDirectory struct {
	customers CustomerService
}

// Ensure LocalCustomerDirectory implements CustomerDirectory
var _ client.CustomerDirectory = (*LocalCustomerDirectory)(nil)

// NewLocalCustomerDirectory creates a directory backed by the customer service.
func NewLocalCustomerDirectory(customers CustomerService) *LocalCustomerDirectory {
	return &LocalCustomerDirectory{customers: customers}
}

// Exists reports storage failures as directory unavailability.
func (d *LocalCustomerDirectory) Exists(ctx context.Context, customerID int64) (bool, error) {
	exists, err := d.customers.CustomerExists(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errors.ErrCustomerServiceUnavailable, err)
	}
	return exists, nil
}
