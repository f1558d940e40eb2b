package service

import (
	"errors"
	"fmt"
	"strings"

	"schoolku_backend/internals/features/finance/payments/repository"
)

var (
	ErrStudentNotFound      = repository.ErrStudentNotFound
	ErrFeeStructureNotFound = repository.ErrFeeStructureNotFound
	ErrPaymentNotFound      = repository.ErrPaymentNotFound

	ErrInvalidMonths    = errors.New("months must be a non-empty list of non-empty labels")
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
	ErrFractionalAmount = errors.New("gateway amount must be a whole currency unit")
	ErrNothingDue       = errors.New("nothing due for this student")
	ErrInvalidSignature = errors.New("invalid gateway signature")
	ErrGateway          = errors.New("payment gateway error")
)

// MonthConflictError lists requested months that are already paid or claimed.
type MonthConflictError struct {
	Months []string
}

func (e *MonthConflictError) Error() string {
	return fmt.Sprintf("months already paid: %s", strings.Join(e.Months, ", "))
}

// ConflictingMonths returns the months when err is a month conflict.
func ConflictingMonths(err error) ([]string, bool) {
	var mc *MonthConflictError
	if errors.As(err, &mc) {
		return mc.Months, true
	}
	return nil, false
}
