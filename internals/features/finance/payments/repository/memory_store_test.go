package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/finance/payments/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

func claim(studentID, paymentID uuid.UUID, month string) model.PaymentMonthClaimModel {
	return model.PaymentMonthClaimModel{
		PaymentMonthClaimStudentID: studentID,
		PaymentMonthClaimMonth:     month,
		PaymentMonthClaimSource:    model.PaymentSourceOffline,
		PaymentMonthClaimPaymentID: paymentID,
	}
}

func TestInsertClaims_AllOrNothing(t *testing.T) {
	s := NewMemoryLedgerStore()
	ctx := context.Background()
	sid := uuid.New()

	require.NoError(t, s.InsertClaims(ctx, []model.PaymentMonthClaimModel{claim(sid, uuid.New(), "January")}))

	err := s.InsertClaims(ctx, []model.PaymentMonthClaimModel{
		claim(sid, uuid.New(), "February"),
		claim(sid, uuid.New(), "January"),
	})
	assert.ErrorIs(t, err, ErrMonthClaimed)

	got, err := s.ListClaimedMonths(ctx, sid, []string{"January", "February"})
	require.NoError(t, err)
	assert.Equal(t, []string{"January"}, got)

	// same month twice in one batch
	err = s.InsertClaims(ctx, []model.PaymentMonthClaimModel{
		claim(sid, uuid.New(), "March"),
		claim(sid, uuid.New(), "March"),
	})
	assert.ErrorIs(t, err, ErrMonthClaimed)

	// other students are independent
	assert.NoError(t, s.InsertClaims(ctx, []model.PaymentMonthClaimModel{claim(uuid.New(), uuid.New(), "January")}))
}

func TestReleaseClaims(t *testing.T) {
	s := NewMemoryLedgerStore()
	ctx := context.Background()
	sid, pid := uuid.New(), uuid.New()

	require.NoError(t, s.InsertClaims(ctx, []model.PaymentMonthClaimModel{claim(sid, pid, "April"), claim(sid, pid, "May")}))
	require.NoError(t, s.InsertClaims(ctx, []model.PaymentMonthClaimModel{claim(sid, uuid.New(), "June")}))
	require.NoError(t, s.ReleaseClaims(ctx, pid))

	got, err := s.ListClaimedMonths(ctx, sid, []string{"April", "May", "June"})
	require.NoError(t, err)
	assert.Equal(t, []string{"June"}, got)
}

func TestWithStudentLock_RollsBackOnError(t *testing.T) {
	s := NewMemoryLedgerStore()
	ctx := context.Background()
	st := s.PutStudent(studentModel.StudentModel{StudentName: "Ayu", StudentClassLevel: 10, StudentIsActive: true})

	kept := &model.OfflinePaymentModel{
		OfflinePaymentStudentID: st.StudentID,
		OfflinePaymentAmount:    decimal.NewFromInt(100),
		OfflinePaymentMonths:    []string{"January"},
		OfflinePaymentReceiptNo: "RCPT-1",
	}
	require.NoError(t, s.CreateOfflinePayment(ctx, kept))
	require.NoError(t, s.InsertClaims(ctx, []model.PaymentMonthClaimModel{claim(st.StudentID, kept.OfflinePaymentID, "January")}))

	boom := errors.New("boom")
	err := s.WithStudentLock(ctx, st.StudentID, func(tx LedgerStore) error {
		p := &model.OfflinePaymentModel{
			OfflinePaymentStudentID: st.StudentID,
			OfflinePaymentAmount:    decimal.NewFromInt(200),
			OfflinePaymentMonths:    []string{"February"},
			OfflinePaymentReceiptNo: "RCPT-2",
		}
		if err := tx.CreateOfflinePayment(ctx, p); err != nil {
			return err
		}
		if err := tx.InsertClaims(ctx, []model.PaymentMonthClaimModel{claim(st.StudentID, p.OfflinePaymentID, "February")}); err != nil {
			return err
		}
		if err := tx.ReleaseClaims(ctx, kept.OfflinePaymentID); err != nil {
			return err
		}
		if err := tx.DeleteOfflinePayment(ctx, kept.OfflinePaymentID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	payments, err := s.ListOfflinePayments(ctx, st.StudentID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "RCPT-1", payments[0].OfflinePaymentReceiptNo)

	claimed, err := s.ListClaimedMonths(ctx, st.StudentID, []string{"January", "February"})
	require.NoError(t, err)
	assert.Equal(t, []string{"January"}, claimed)
}

func TestWithStudentLock_UnknownStudent(t *testing.T) {
	s := NewMemoryLedgerStore()
	called := false
	err := s.WithStudentLock(context.Background(), uuid.New(), func(LedgerStore) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.False(t, called)
}

func TestOnlinePayments(t *testing.T) {
	s := NewMemoryLedgerStore()
	ctx := context.Background()
	sid := uuid.New()

	p := &model.OnlinePaymentModel{
		OnlinePaymentStudentID:  sid,
		OnlinePaymentAmountPaid: decimal.NewFromInt(500),
		OnlinePaymentMonths:     []string{"July"},
		OnlinePaymentStatus:     model.OnlinePaymentStatusCreated,
		OnlinePaymentOrderID:    "FEE-1",
	}
	require.NoError(t, s.CreateOnlinePayment(ctx, p))
	assert.ErrorIs(t, s.CreateOnlinePayment(ctx, &model.OnlinePaymentModel{OnlinePaymentOrderID: "FEE-1"}), ErrDuplicateOrderID)

	ok, err := s.ListSuccessfulOnlinePayments(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, ok)

	p.OnlinePaymentStatus = model.OnlinePaymentStatusSuccess
	require.NoError(t, s.UpdateOnlinePayment(ctx, p))
	ok, err = s.ListSuccessfulOnlinePayments(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, ok, 1)

	// returned rows are copies
	ok[0].OnlinePaymentMonths[0] = "mutated"
	again, err := s.GetOnlinePaymentByOrderID(ctx, "FEE-1")
	require.NoError(t, err)
	assert.Equal(t, "July", again.OnlinePaymentMonths[0])

	_, err = s.GetOnlinePaymentByOrderID(ctx, "FEE-404")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestSetOnlinePaymentCheckout_KeepsStatus(t *testing.T) {
	s := NewMemoryLedgerStore()
	ctx := context.Background()

	p := &model.OnlinePaymentModel{
		OnlinePaymentStudentID:  uuid.New(),
		OnlinePaymentAmountPaid: decimal.NewFromInt(500),
		OnlinePaymentMonths:     []string{"July"},
		OnlinePaymentStatus:     model.OnlinePaymentStatusCreated,
		OnlinePaymentOrderID:    "FEE-2",
	}
	require.NoError(t, s.CreateOnlinePayment(ctx, p))

	failed := *p
	failed.OnlinePaymentStatus = model.OnlinePaymentStatusFailed
	require.NoError(t, s.UpdateOnlinePayment(ctx, &failed))

	require.NoError(t, s.SetOnlinePaymentCheckout(ctx, p.OnlinePaymentID, "tok-2", "https://pay.test/2"))
	got, err := s.GetOnlinePaymentByOrderID(ctx, "FEE-2")
	require.NoError(t, err)
	assert.Equal(t, model.OnlinePaymentStatusFailed, got.OnlinePaymentStatus)
	require.NotNil(t, got.OnlinePaymentSnapToken)
	assert.Equal(t, "tok-2", *got.OnlinePaymentSnapToken)
	require.NotNil(t, got.OnlinePaymentRedirectURL)
	assert.Equal(t, "https://pay.test/2", *got.OnlinePaymentRedirectURL)

	assert.ErrorIs(t, s.SetOnlinePaymentCheckout(ctx, uuid.New(), "x", "y"), ErrPaymentNotFound)
}

func TestPage(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, page(rows, 2, 2))
	assert.Equal(t, []int{4, 5}, page(rows, 3, 0))
	assert.Empty(t, page(rows, 9, 2))
}
