package service

import (
	"time"

	"github.com/shopspring/decimal"

	"transferbff/internal/model"
)

// CreateTransferRequest carries the caller's input for a new transfer.
// Nil pointers and empty strings mean the field was absent.
type CreateTransferRequest struct {
	CustomerID *int64
	Amount     *decimal.Decimal
	Type       model.TransferType
	Payee      string
}

// TransferView is a transfer as returned to callers, with the derived total.
type TransferView struct {
	ID          int64                `json:"id"`
	CustomerID  int64                `json:"customer_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        model.TransferType   `json:"type"`
	Payee       string               `json:"payee"`
	Tariff      decimal.Decimal      `json:"tariff"`
	Commission  decimal.Decimal      `json:"commission"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Status      model.TransferStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toTransferEntity(req CreateTransferRequest, tariff, commission decimal.Decimal, now time.Time) *model.Transfer {
	return &model.Transfer{
		CustomerID: *req.CustomerID,
		Amount:     *req.Amount,
		Type:       req.Type,
		Payee:      req.Payee,
		Tariff:     tariff,
		Commission: commission,
		Status:     model.TransferStatusPending,
		CreatedAt:  now,
	}
}

func toTransferView(t *model.Transfer) *TransferView {
	return &TransferView{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		Amount:      t.Amount,
		Type:        t.Type,
		Payee:       t.Payee,
		Tariff:      t.Tariff,
		Commission:  t.Commission,
		TotalAmount: t.TotalAmount(),
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransferViews(transfers []model.Transfer) []TransferView {
	views := make([]TransferView, 0, len(transfers))
	for i := range transfers {
		views = append(views, *toTransferView(&transfers[i]))
	}
	return views
}
