// file: internals/features/finance/payments/service/offline_payment.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

type OfflinePaymentInput struct {
	StudentID     uuid.UUID
	Amount        decimal.Decimal
	Months        []string
	Mode          model.OfflinePaymentMode
	CollectorID   *uuid.UUID
	CollectorName string
	Remark        *string
	PaidAt        *time.Time
}

// RecordOfflinePayment guards the months and persists the payment with its
// month claims under the student lock.
func (s *FeeService) RecordOfflinePayment(ctx context.Context, in OfflinePaymentInput) (*model.OfflinePaymentModel, error) {
	months, err := NormalizeMonths(in.Months)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	mode := in.Mode
	if mode == "" {
		mode = model.OfflinePaymentModeCash
	}
	paidAt := s.now()
	if in.PaidAt != nil && !in.PaidAt.IsZero() {
		paidAt = *in.PaidAt
	}

	p := &model.OfflinePaymentModel{
		OfflinePaymentID:            uuid.New(),
		OfflinePaymentStudentID:     in.StudentID,
		OfflinePaymentAmount:        in.Amount,
		OfflinePaymentMonths:        pq.StringArray(months),
		OfflinePaymentMode:          mode,
		OfflinePaymentCollectorID:   in.CollectorID,
		OfflinePaymentCollectorName: strings.TrimSpace(in.CollectorName),
		OfflinePaymentRemark:        in.Remark,
		OfflinePaymentReceiptNo:     s.newReceiptNo(),
		OfflinePaymentPaidAt:        paidAt,
	}

	err = s.store.WithStudentLock(ctx, in.StudentID, func(tx repository.LedgerStore) error {
		if err := claimMonths(ctx, tx, in.StudentID, p.OfflinePaymentID, model.PaymentSourceOffline, months); err != nil {
			return err
		}
		return tx.CreateOfflinePayment(ctx, p)
	})
	if err != nil {
		if mc, ok := ConflictingMonths(err); ok {
			monthConflicts.WithLabelValues(string(model.PaymentSourceOffline)).Inc()
			s.log.Info("offline payment rejected: months already paid",
				zap.String("student_id", in.StudentID.String()), zap.Strings("months", mc))
		}
		return nil, err
	}

	paymentsRecorded.WithLabelValues(string(model.PaymentSourceOffline)).Inc()
	s.log.Info("offline payment recorded",
		zap.String("student_id", in.StudentID.String()),
		zap.String("receipt_no", p.OfflinePaymentReceiptNo),
		zap.String("amount", p.OfflinePaymentAmount.String()),
		zap.Strings("months", months))
	return p, nil
}

// VoidOfflinePayment deletes the payment and releases its months.
func (s *FeeService) VoidOfflinePayment(ctx context.Context, id uuid.UUID) (*model.OfflinePaymentModel, error) {
	p, err := s.store.GetOfflinePayment(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.store.WithStudentLock(ctx, p.OfflinePaymentStudentID, func(tx repository.LedgerStore) error {
		if err := tx.ReleaseClaims(ctx, p.OfflinePaymentID); err != nil {
			return err
		}
		return tx.DeleteOfflinePayment(ctx, p.OfflinePaymentID)
	})
	if errors.Is(err, repository.ErrStudentNotFound) {
		// student was hard-deleted; nothing left to serialize against
		if err = s.store.ReleaseClaims(ctx, p.OfflinePaymentID); err == nil {
			err = s.store.DeleteOfflinePayment(ctx, p.OfflinePaymentID)
		}
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("offline payment voided",
		zap.String("offline_payment_id", p.OfflinePaymentID.String()),
		zap.String("receipt_no", p.OfflinePaymentReceiptNo))
	return p, nil
}
