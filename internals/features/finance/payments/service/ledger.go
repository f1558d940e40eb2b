// file: internals/features/finance/payments/service/ledger.go
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

// Ledger is the merged, non-persisted view of one student's payments.
type Ledger struct {
	StudentID        uuid.UUID                   `json:"student_id"`
	OnlinePayments   []model.OnlinePaymentModel  `json:"online_payments"`
	OfflinePayments  []model.OfflinePaymentModel `json:"offline_payments"`
	OnlinePaidTotal  decimal.Decimal             `json:"online_paid_total"`
	OfflinePaidTotal decimal.Decimal             `json:"offline_paid_total"`
	TotalPaid        decimal.Decimal             `json:"total_paid"`
	PaidMonths       []string                    `json:"paid_months"`
}

// MergeLedger unions successful online payments with all offline payments.
// It does not check that the student exists.
func (s *FeeService) MergeLedger(ctx context.Context, studentID uuid.UUID) (*Ledger, error) {
	return mergeLedger(ctx, s.store, studentID)
}

func mergeLedger(ctx context.Context, store repository.LedgerStore, studentID uuid.UUID) (*Ledger, error) {
	online, err := store.ListSuccessfulOnlinePayments(ctx, studentID)
	if err != nil {
		return nil, err
	}
	offline, err := store.ListOfflinePayments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	months := map[string]struct{}{}
	onlineTotal := decimal.Zero
	for _, p := range online {
		onlineTotal = onlineTotal.Add(p.OnlinePaymentAmountPaid)
		for _, m := range p.OnlinePaymentMonths {
			months[m] = struct{}{}
		}
	}
	offlineTotal := decimal.Zero
	for _, p := range offline {
		offlineTotal = offlineTotal.Add(p.OfflinePaymentAmount)
		for _, m := range p.OfflinePaymentMonths {
			months[m] = struct{}{}
		}
	}

	return &Ledger{
		StudentID:        studentID,
		OnlinePayments:   online,
		OfflinePayments:  offline,
		OnlinePaidTotal:  onlineTotal,
		OfflinePaidTotal: offlineTotal,
		TotalPaid:        onlineTotal.Add(offlineTotal),
		PaidMonths:       sortedKeys(months),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
