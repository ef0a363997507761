package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"transferbff/internal/model"
)

// ErrStatusConflict is returned when a transfer is not in the status a transition expects.
var ErrStatusConflict = errors.New("transfer status conflict")

// TransferRepository defines transfer persistence operations.
type TransferRepository interface {
	Create(ctx context.Context, transfer *model.Transfer) error
	FindByID(ctx context.Context, id int64) (*model.Transfer, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Transfer, error)
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]model.Transfer, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.TransferStatus) (bool, error)
	TransitionStatus(ctx context.Context, id int64, from, to model.TransferStatus) (*model.Transfer, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TransferRepository) error) error
}

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository.
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

// Create creates a new transfer record and fills in its ID.
func (r *transferRepository) Create(ctx context.Context, transfer *model.Transfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

// FindByID finds a transfer by ID.
func (r *transferRepository) FindByID(ctx context.Context, id int64) (*model.Transfer, error) {
	var transfer model.Transfer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transfer).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

// FindByIDForUpdate finds a transfer by ID with a row-level lock.
func (r *transferRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Transfer, error) {
	var transfer model.Transfer
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&transfer).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

// FindAllByCustomerID lists a customer's transfers in insertion order.
func (r *transferRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]model.Transfer, error) {
	transfers := make([]model.Transfer, 0)
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).
		Order("id ASC").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// UpdateStatus sets the status only if the row still holds from.
// It reports whether a row was changed.
func (r *transferRepository) UpdateStatus(ctx context.Context, id int64, from, to model.TransferStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Transfer{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// TransitionStatus locks the transfer, checks it is in from and moves it to to.
// Returns gorm.ErrRecordNotFound when the transfer does not exist and
// ErrStatusConflict when it is in any other status.
func (r *transferRepository) TransitionStatus(ctx context.Context, id int64, from, to model.TransferStatus) (*model.Transfer, error) {
	var updated *model.Transfer
	err := r.WithTransaction(ctx, func(ctx context.Context, txRepo TransferRepository) error {
		current, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != from {
			return fmt.Errorf("%w: transfer %d is %s", ErrStatusConflict, id, current.Status)
		}

		changed, err := txRepo.UpdateStatus(ctx, id, from, to)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if !changed {
			return fmt.Errorf("%w: transfer %d is no longer %s", ErrStatusConflict, id, from)
		}

		updated, err = txRepo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// WithTransaction executes a function within a database transaction.
func (r *transferRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TransferRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &transferRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
