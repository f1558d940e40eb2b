// file: internals/features/finance/payments/service/month_guard.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

// CheckMonths rejects requested months that are already in the student's
// paid-month set. Labels are opaque and case-sensitive.
func (s *FeeService) CheckMonths(ctx context.Context, studentID uuid.UUID, requested []string) error {
	months, err := NormalizeMonths(requested)
	if err != nil {
		return err
	}
	return checkMonths(ctx, s.store, studentID, months)
}

func checkMonths(ctx context.Context, store repository.LedgerStore, studentID uuid.UUID, months []string) error {
	ledger, err := mergeLedger(ctx, store, studentID)
	if err != nil {
		return err
	}
	if conflict := intersect(months, ledger.PaidMonths); len(conflict) > 0 {
		return &MonthConflictError{Months: conflict}
	}
	return nil
}

// claimMonths runs inside the student lock: guard against the ledger, then
// against open reservations, then insert the claim rows.
func claimMonths(ctx context.Context, tx repository.LedgerStore, studentID, paymentID uuid.UUID, source model.PaymentSource, months []string) error {
	if err := checkMonths(ctx, tx, studentID, months); err != nil {
		return err
	}
	reserved, err := tx.ListClaimedMonths(ctx, studentID, months)
	if err != nil {
		return err
	}
	if len(reserved) > 0 {
		return &MonthConflictError{Months: reserved}
	}

	claims := make([]model.PaymentMonthClaimModel, 0, len(months))
	for _, m := range months {
		claims = append(claims, model.PaymentMonthClaimModel{
			PaymentMonthClaimID:        uuid.New(),
			PaymentMonthClaimStudentID: studentID,
			PaymentMonthClaimMonth:     m,
			PaymentMonthClaimSource:    source,
			PaymentMonthClaimPaymentID: paymentID,
		})
	}
	if err := tx.InsertClaims(ctx, claims); err != nil {
		if !errors.Is(err, repository.ErrMonthClaimed) {
			return err
		}
		// Lost a race with a writer outside the lock; name only its months.
		taken, lerr := tx.ListClaimedMonths(ctx, studentID, months)
		if lerr != nil {
			return lerr
		}
		if len(taken) == 0 {
			taken = months
		}
		return &MonthConflictError{Months: taken}
	}
	return nil
}

// NormalizeMonths trims labels and drops duplicates, keeping first-seen order.
func NormalizeMonths(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, ErrInvalidMonths
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m == "" {
			return nil, ErrInvalidMonths
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// intersect returns the requested labels present in paid (sorted).
func intersect(requested, paid []string) []string {
	set := make(map[string]struct{}, len(paid))
	for _, p := range paid {
		set[p] = struct{}{}
	}
	hit := map[string]struct{}{}
	for _, r := range requested {
		if _, ok := set[r]; ok {
			hit[r] = struct{}{}
		}
	}
	return sortedKeys(hit)
}
