package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transferbff/internal/model"
)

func newTransfer(customerID int64, amount string) *model.Transfer {
	return &model.Transfer{
		CustomerID: customerID,
		Amount:     decimal.RequireFromString(amount),
		Type:       model.TransferTypeCardToCard,
		Payee:      "AZ00BANK0000000000001",
		Tariff:     decimal.RequireFromString("1.00"),
		Commission: decimal.RequireFromString("2.00"),
		Status:     model.TransferStatusPending,
		CreatedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestTransferRepository_CreateAndFind(t *testing.T) {
	repo := NewTransferRepository(newTestDB(t))
	ctx := context.Background()

	transfer := newTransfer(42, "100.00")
	require.NoError(t, repo.Create(ctx, transfer))
	assert.Positive(t, transfer.ID)

	found, err := repo.FindByID(ctx, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), found.CustomerID)
	assert.True(t, decimal.RequireFromString("100.00").Equal(found.Amount))
	assert.True(t, decimal.RequireFromString("1.00").Equal(found.Tariff))
	assert.True(t, decimal.RequireFromString("2.00").Equal(found.Commission))
	assert.Equal(t, model.TransferStatusPending, found.Status)
	assert.True(t, transfer.CreatedAt.Equal(found.CreatedAt))

	_, err = repo.FindByID(ctx, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTransferRepository_FindAllByCustomerID(t *testing.T) {
	repo := NewTransferRepository(newTestDB(t))
	ctx := context.Background()

	for _, tr := range []*model.Transfer{
		newTransfer(42, "10.00"),
		newTransfer(7, "20.00"),
		newTransfer(42, "30.00"),
	} {
		require.NoError(t, repo.Create(ctx, tr))
	}

	transfers, err := repo.FindAllByCustomerID(ctx, 42)
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.True(t, transfers[0].ID < transfers[1].ID)
	assert.True(t, decimal.RequireFromString("30.00").Equal(transfers[1].Amount))

	none, err := repo.FindAllByCustomerID(ctx, 100)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTransferRepository_UpdateStatusIsConditional(t *testing.T) {
	repo := NewTransferRepository(newTestDB(t))
	ctx := context.Background()

	transfer := newTransfer(42, "100.00")
	require.NoError(t, repo.Create(ctx, transfer))

	changed, err := repo.UpdateStatus(ctx, transfer.ID, model.TransferStatusCompleted, model.TransferStatusFailed)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.UpdateStatus(ctx, transfer.ID, model.TransferStatusPending, model.TransferStatusCompleted)
	require.NoError(t, err)
	assert.True(t, changed)

	found, err := repo.FindByID(ctx, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TransferStatusCompleted, found.Status)
}

func TestTransferRepository_TransitionStatus(t *testing.T) {
	repo := NewTransferRepository(newTestDB(t))
	ctx := context.Background()

	transfer := newTransfer(42, "100.00")
	require.NoError(t, repo.Create(ctx, transfer))

	updated, err := repo.TransitionStatus(ctx, transfer.ID, model.TransferStatusPending, model.TransferStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.TransferStatusCancelled, updated.Status)
	assert.True(t, decimal.RequireFromString("100.00").Equal(updated.Amount))

	_, err = repo.TransitionStatus(ctx, transfer.ID, model.TransferStatusPending, model.TransferStatusCancelled)
	assert.True(t, errors.Is(err, ErrStatusConflict))

	found, err := repo.FindByID(ctx, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TransferStatusCancelled, found.Status)

	_, err = repo.TransitionStatus(ctx, 999, model.TransferStatusPending, model.TransferStatusCancelled)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
