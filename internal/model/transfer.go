package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for money columns.
const MoneyScale = 2

// TransferType is the closed set of supported transfer kinds.
type TransferType string

const (
	TransferTypeCardToCard    TransferType = "CARD_TO_CARD"
	TransferTypeAccountToCard TransferType = "ACCOUNT_TO_CARD"
)

// Valid reports whether t is one of the supported transfer types.
func (t TransferType) Valid() bool {
	switch t {
	case TransferTypeCardToCard, TransferTypeAccountToCard:
		return true
	}
	return false
}

// TransferStatus represents the lifecycle state of a transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusFailed    TransferStatus = "FAILED"
	TransferStatusCancelled TransferStatus = "CANCELLED"
)

// KnownTransferStatuses lists the status names accepted on the wire.
var KnownTransferStatuses = []TransferStatus{
	TransferStatusPending,
	TransferStatusCompleted,
	TransferStatusFailed,
	TransferStatusCancelled,
}

// ParseTransferStatus returns the known status matching s.
func ParseTransferStatus(s string) (TransferStatus, bool) {
	for _, status := range KnownTransferStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// IsPending reports whether the transfer may still change status.
func (s TransferStatus) IsPending() bool {
	return s == TransferStatusPending
}

// Transfer is a money transfer requested by a customer.
// Amount, Type, Payee, Tariff, Commission and CreatedAt never change after creation.
type Transfer struct {
	ID         int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID int64           `json:"customer_id" gorm:"not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Type       TransferType    `json:"type" gorm:"type:varchar(32);not null"`
	Payee      string          `json:"payee" gorm:"size:255;not null"`
	Tariff     decimal.Decimal `json:"tariff" gorm:"type:decimal(20,2);not null"`
	Commission decimal.Decimal `json:"commission" gorm:"type:decimal(20,2);not null"`
	Status     TransferStatus  `json:"status" gorm:"type:varchar(32);not null;default:'PENDING';index"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TotalAmount is the amount plus both fees. It is derived, never stored.
func (t *Transfer) TotalAmount() decimal.Decimal {
	return t.Amount.Add(t.Commission).Add(t.Tariff)
}
