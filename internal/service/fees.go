package service

import (
	"github.com/shopspring/decimal"

	"transferbff/internal/model"
)

// commissionScale is the number of decimal places commissions are rounded to.
const commissionScale = model.MoneyScale

var (
	tariffTable = map[model.TransferType]decimal.Decimal{
		model.TransferTypeCardToCard:    decimal.RequireFromString("1.00"),
		model.TransferTypeAccountToCard: decimal.RequireFromString("0.50"),
	}

	commissionRates = map[model.TransferType]decimal.Decimal{
		model.TransferTypeCardToCard:    decimal.RequireFromString("0.02"),
		model.TransferTypeAccountToCard: decimal.RequireFromString("0.01"),
	}
)

// CalculateTariff returns the flat fee for a transfer type.
func CalculateTariff(transferType model.TransferType) decimal.Decimal {
	return tariffTable[transferType]
}

// CalculateCommission returns amount times the type's rate, rounded half away
// from zero to two decimal places.
func CalculateCommission(amount decimal.Decimal, transferType model.TransferType) decimal.Decimal {
	return amount.Mul(commissionRates[transferType]).Round(commissionScale)
}
