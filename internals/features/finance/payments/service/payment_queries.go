package service

import (
	"context"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

// StudentLedger is MergeLedger for an existing student.
func (s *FeeService) StudentLedger(ctx context.Context, studentID uuid.UUID) (*Ledger, error) {
	if _, err := s.store.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.MergeLedger(ctx, studentID)
}

// CheckStudentMonths is CheckMonths for an existing student.
func (s *FeeService) CheckStudentMonths(ctx context.Context, studentID uuid.UUID, months []string) error {
	if _, err := s.store.GetStudent(ctx, studentID); err != nil {
		return err
	}
	return s.CheckMonths(ctx, studentID, months)
}

func (s *FeeService) ListOnlinePayments(ctx context.Context, f repository.OnlinePaymentFilter) ([]model.OnlinePaymentModel, int64, error) {
	return s.store.ListOnlinePayments(ctx, f)
}

func (s *FeeService) ListOfflinePayments(ctx context.Context, f repository.OfflinePaymentFilter) ([]model.OfflinePaymentModel, int64, error) {
	return s.store.ListOfflinePaymentsPage(ctx, f)
}
