package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"transferbff/internal/model"
	"transferbff/internal/repository"
)

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *model.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) FindByID(ctx context.Context, id int64) (*model.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]model.Transfer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transfer), args.Error(1)
}

func (m *MockTransferRepository) UpdateStatus(ctx context.Context, id int64, from, to model.TransferStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransferRepository) TransitionStatus(ctx context.Context, id int64, from, to model.TransferStatus) (*model.Transfer, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.TransferRepository) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockCustomerDirectory is a mock implementation of CustomerDirectory.
type MockCustomerDirectory struct {
	mock.Mock
}

func (m *MockCustomerDirectory) Exists(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
