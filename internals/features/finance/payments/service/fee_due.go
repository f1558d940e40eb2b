package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

type FeeDue struct {
	ClassFee    decimal.Decimal `json:"class_fee"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Due         decimal.Decimal `json:"due"`
	HasPaidFull bool            `json:"has_paid_full"`
	HasPaidHalf bool            `json:"has_paid_half"`
}

// ComputeDue: due = max(fee - paid, 0); full when paid >= fee; half when
// fee/2 <= paid < fee. The half threshold is the exact fee/2, not rounded.
func ComputeDue(classFee, totalPaid decimal.Decimal) FeeDue {
	due := classFee.Sub(totalPaid)
	if due.IsNegative() {
		due = decimal.Zero
	}
	full := totalPaid.GreaterThanOrEqual(classFee)
	half := !full && totalPaid.GreaterThanOrEqual(classFee.Div(two))
	return FeeDue{
		ClassFee:    classFee,
		TotalPaid:   totalPaid,
		Due:         due,
		HasPaidFull: full,
		HasPaidHalf: half,
	}
}

// MonthlyInstallment splits the annual fee and rounds half-up to a whole unit.
func MonthlyInstallment(classFee decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return classFee.Round(0)
	}
	return roundHalfUp(classFee.Div(decimal.NewFromInt(int64(months))))
}

// HalfFeeAmount is the amount charged for a "half" gateway order.
func HalfFeeAmount(classFee decimal.Decimal) decimal.Decimal {
	return roundHalfUp(classFee.Div(two))
}

func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}

// CoerceAmount reads an amount as the gateway sends it. Missing or
// non-numeric values count as 0.
func CoerceAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
