// file: internals/features/finance/payments/service/online_order.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

type OnlineOrderInput struct {
	StudentID   uuid.UUID
	PaymentType model.OnlinePaymentType
	Months      []string
	Amount      *decimal.Decimal // custom only
	CreatedBy   *uuid.UUID
}

type OnlineOrder struct {
	Payment *model.OnlinePaymentModel `json:"payment"`
	Order   *OrderRef                 `json:"order"`
}

// OpenOnlineOrder reserves the months, writes the order row as "created",
// then asks the gateway for a Snap token. The ledger ignores the row until a
// verified notification marks it successful.
func (s *FeeService) OpenOnlineOrder(ctx context.Context, in OnlineOrderInput) (*OnlineOrder, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: not configured", ErrGateway)
	}
	months, err := NormalizeMonths(in.Months)
	if err != nil {
		return nil, err
	}
	st, err := s.store.GetStudent(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	amount, err := s.orderAmount(ctx, st, in)
	if err != nil {
		return nil, err
	}

	p := &model.OnlinePaymentModel{
		OnlinePaymentID:         uuid.New(),
		OnlinePaymentStudentID:  st.StudentID,
		OnlinePaymentAmountPaid: amount,
		OnlinePaymentType:       in.PaymentType,
		OnlinePaymentMonths:     pq.StringArray(months),
		OnlinePaymentStatus:     model.OnlinePaymentStatusCreated,
		OnlinePaymentOrderID:    s.newOrderID(),
		OnlinePaymentCreatedBy:  in.CreatedBy,
	}

	err = s.store.WithStudentLock(ctx, st.StudentID, func(tx repository.LedgerStore) error {
		if err := claimMonths(ctx, tx, st.StudentID, p.OnlinePaymentID, model.PaymentSourceOnline, months); err != nil {
			return err
		}
		return tx.CreateOnlinePayment(ctx, p)
	})
	if err != nil {
		if _, ok := ConflictingMonths(err); ok {
			monthConflicts.WithLabelValues(string(model.PaymentSourceOnline)).Inc()
		}
		return nil, err
	}

	ref, gwErr := s.gateway.CreateOrder(ctx, OrderRequest{
		OrderID:     p.OnlinePaymentOrderID,
		Amount:      amount,
		Currency:    s.currency,
		Description: fmt.Sprintf("School fee %s (%s)", st.StudentName, st.StudentClassLevel.Key()),
		Customer:    customerOf(st),
	})
	if gwErr != nil {
		s.log.Warn("gateway order failed", zap.String("order_id", p.OnlinePaymentOrderID), zap.Error(gwErr))
		if ferr := s.failOrder(context.WithoutCancel(ctx), p.OnlinePaymentOrderID, "gateway: "+gwErr.Error()); ferr != nil {
			s.log.Error("release failed order", zap.String("order_id", p.OnlinePaymentOrderID), zap.Error(ferr))
		}
		if errors.Is(gwErr, ErrGateway) {
			return nil, gwErr
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, gwErr)
	}

	if err := s.store.SetOnlinePaymentCheckout(ctx, p.OnlinePaymentID, ref.Token, ref.RedirectURL); err != nil {
		return nil, err
	}
	p.OnlinePaymentSnapToken = &ref.Token
	p.OnlinePaymentRedirectURL = &ref.RedirectURL

	s.log.Info("gateway order opened",
		zap.String("order_id", p.OnlinePaymentOrderID),
		zap.String("student_id", st.StudentID.String()),
		zap.String("amount", amount.String()),
		zap.Strings("months", months))
	return &OnlineOrder{Payment: p, Order: ref}, nil
}

// orderAmount: full = remaining due, half = fee/2 rounded half-up (capped
// at due), custom = requested whole amount.
func (s *FeeService) orderAmount(ctx context.Context, st *studentModel.StudentModel, in OnlineOrderInput) (decimal.Decimal, error) {
	switch in.PaymentType {
	case model.OnlinePaymentTypeCustom:
		if in.Amount == nil || !in.Amount.IsPositive() {
			return decimal.Zero, ErrInvalidAmount
		}
		if !in.Amount.Equal(in.Amount.Truncate(0)) {
			return decimal.Zero, ErrFractionalAmount
		}
		return *in.Amount, nil

	case model.OnlinePaymentTypeFull, model.OnlinePaymentTypeHalf:
		fs, err := s.store.GetFeeStructureByLevel(ctx, st.StudentClassLevel)
		if err != nil {
			return decimal.Zero, err
		}
		ledger, err := s.MergeLedger(ctx, st.StudentID)
		if err != nil {
			return decimal.Zero, err
		}
		due := ComputeDue(fs.FeeStructureAmount, ledger.TotalPaid).Due
		if !due.IsPositive() {
			return decimal.Zero, ErrNothingDue
		}
		amount := roundHalfUp(due)
		if in.PaymentType == model.OnlinePaymentTypeHalf {
			amount = decimal.Min(HalfFeeAmount(fs.FeeStructureAmount), amount)
		}
		return amount, nil
	}
	return decimal.Zero, fmt.Errorf("unknown payment type %q", in.PaymentType)
}

// failOrder moves a created order to failed and releases its months.
func (s *FeeService) failOrder(ctx context.Context, orderID, reason string) error {
	p, err := s.store.GetOnlinePaymentByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	fail := func(tx repository.LedgerStore) error {
		cur, err := tx.GetOnlinePaymentByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if cur.OnlinePaymentStatus != model.OnlinePaymentStatusCreated {
			return nil
		}
		cur.OnlinePaymentStatus = model.OnlinePaymentStatusFailed
		cur.OnlinePaymentFailureReason = &reason
		if err := tx.ReleaseClaims(ctx, cur.OnlinePaymentID); err != nil {
			return err
		}
		return tx.UpdateOnlinePayment(ctx, cur)
	}
	err = s.store.WithStudentLock(ctx, p.OnlinePaymentStudentID, fail)
	if errors.Is(err, repository.ErrStudentNotFound) {
		// student was hard-deleted; nothing left to serialize against
		return fail(s.store)
	}
	return err
}

func customerOf(st *studentModel.StudentModel) Customer {
	c := Customer{FirstName: st.StudentName}
	if st.StudentGuardianName != nil && *st.StudentGuardianName != "" {
		c.FirstName = *st.StudentGuardianName
	}
	if st.StudentGuardianEmail != nil {
		c.Email = *st.StudentGuardianEmail
	}
	if st.StudentGuardianPhone != nil {
		c.Phone = *st.StudentGuardianPhone
	}
	return c
}
