package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/finance/payments/model"
)

func TestRecordOfflinePayment(t *testing.T) {
	f := newFixture(t)
	sid := f.student("citra", 11)

	p := f.payOffline(t, sid, "2500", "January", "February")
	assert.True(t, strings.HasPrefix(p.OfflinePaymentReceiptNo, "RCPT-"))
	assert.Equal(t, model.OfflinePaymentModeCash, p.OfflinePaymentMode)
	assert.Equal(t, f.now, p.OfflinePaymentPaidAt)
	assert.ElementsMatch(t, []string{"January", "February"}, []string(p.OfflinePaymentMonths))

	ledger, err := f.svc.MergeLedger(context.Background(), sid)
	require.NoError(t, err)
	assert.True(t, d("2500").Equal(ledger.TotalPaid))
}

func TestRecordOfflinePayment_Rejections(t *testing.T) {
	f := newFixture(t)
	sid := f.student("dimas", 11)
	f.payOffline(t, sid, "1000", "January")
	ctx := context.Background()

	t.Run("paid month", func(t *testing.T) {
		_, err := f.svc.RecordOfflinePayment(ctx, OfflinePaymentInput{StudentID: sid, Amount: d("1000"), Months: []string{"February", "January"}})
		assert.True(t, isConflict(err, "January"), "got %v", err)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := f.svc.RecordOfflinePayment(ctx, OfflinePaymentInput{StudentID: sid, Amount: decimal.Zero, Months: []string{"March"}})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("no months", func(t *testing.T) {
		_, err := f.svc.RecordOfflinePayment(ctx, OfflinePaymentInput{StudentID: sid, Amount: d("10")})
		assert.ErrorIs(t, err, ErrInvalidMonths)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := f.svc.RecordOfflinePayment(ctx, OfflinePaymentInput{StudentID: uuid.New(), Amount: d("10"), Months: []string{"March"}})
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	ledger, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, ledger.OfflinePayments, 1)
	assert.Equal(t, []string{"January"}, ledger.PaidMonths)
}

func TestRecordOfflinePayment_ConcurrentSameMonth(t *testing.T) {
	f := newFixture(t)
	sid := f.student("eka", 8)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordOfflinePayment(context.Background(), OfflinePaymentInput{
				StudentID: sid,
				Amount:    d("750"),
				Months:    []string{"April"},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case isConflict(err, "April"):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	ledger, err := f.svc.MergeLedger(context.Background(), sid)
	require.NoError(t, err)
	assert.True(t, d("750").Equal(ledger.TotalPaid))
}

func TestRecordOfflinePayment_BlockedByOpenOrder(t *testing.T) {
	f := newFixture(t)
	f.fee(8, "12000")
	sid := f.student("fajar", 8)

	_, err := f.svc.OpenOnlineOrder(context.Background(), OnlineOrderInput{
		StudentID:   sid,
		PaymentType: model.OnlinePaymentTypeFull,
		Months:      []string{"May"},
	})
	require.NoError(t, err)

	// the open order is not in the ledger but still holds the month
	require.NoError(t, f.svc.CheckMonths(context.Background(), sid, []string{"May"}))
	_, err = f.svc.RecordOfflinePayment(context.Background(), OfflinePaymentInput{StudentID: sid, Amount: d("100"), Months: []string{"May"}})
	assert.True(t, isConflict(err, "May"), "got %v", err)
}

func TestVoidOfflinePayment_ReleasesMonths(t *testing.T) {
	f := newFixture(t)
	sid := f.student("gita", 5)
	ctx := context.Background()

	p := f.payOffline(t, sid, "300", "June")
	voided, err := f.svc.VoidOfflinePayment(ctx, p.OfflinePaymentID)
	require.NoError(t, err)
	assert.Equal(t, p.OfflinePaymentReceiptNo, voided.OfflinePaymentReceiptNo)

	ledger, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, ledger.PaidMonths)

	f.payOffline(t, sid, "300", "June")

	_, err = f.svc.VoidOfflinePayment(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
