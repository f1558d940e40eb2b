package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/finance/payments/model"
)

func TestMergeLedger_SumsBothSourcesAndUnionsMonths(t *testing.T) {
	f := newFixture(t)
	f.fee(10, "12000")
	sid := f.student("aisyah", 10)

	f.successOnline(t, sid, "2000", "2026-01", "2026-02")
	f.payOffline(t, sid, "1500.50", "2026-03")
	f.payOffline(t, sid, "1000", "2026-04")

	ledger, err := f.svc.MergeLedger(context.Background(), sid)
	require.NoError(t, err)

	assert.True(t, d("2000").Equal(ledger.OnlinePaidTotal))
	assert.True(t, d("2500.50").Equal(ledger.OfflinePaidTotal))
	assert.True(t, d("4500.50").Equal(ledger.TotalPaid))
	assert.Equal(t, []string{"2026-01", "2026-02", "2026-03", "2026-04"}, ledger.PaidMonths)
	assert.Len(t, ledger.OnlinePayments, 1)
	assert.Len(t, ledger.OfflinePayments, 2)
}

func TestMergeLedger_IgnoresUnverifiedOnlineOrders(t *testing.T) {
	f := newFixture(t)
	sid := f.student("raka", 10)
	ctx := context.Background()

	for _, st := range []model.OnlinePaymentStatus{model.OnlinePaymentStatusCreated, model.OnlinePaymentStatusFailed} {
		require.NoError(t, f.store.CreateOnlinePayment(ctx, &model.OnlinePaymentModel{
			OnlinePaymentStudentID:  sid,
			OnlinePaymentAmountPaid: d("5000"),
			OnlinePaymentMonths:     pq.StringArray{"2026-05"},
			OnlinePaymentStatus:     st,
			OnlinePaymentOrderID:    "FEE-" + string(st),
		}))
	}

	ledger, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ledger.TotalPaid.IsZero())
	assert.Empty(t, ledger.PaidMonths)
	assert.Empty(t, ledger.OnlinePayments)
}

func TestMergeLedger_SameMonthInBothSources(t *testing.T) {
	f := newFixture(t)
	sid := f.student("bima", 10)
	ctx := context.Background()

	require.NoError(t, f.store.CreateOnlinePayment(ctx, &model.OnlinePaymentModel{
		OnlinePaymentStudentID:  sid,
		OnlinePaymentAmountPaid: d("100"),
		OnlinePaymentMonths:     pq.StringArray{"Jan"},
		OnlinePaymentStatus:     model.OnlinePaymentStatusSuccess,
		OnlinePaymentOrderID:    "FEE-jan-online",
	}))
	require.NoError(t, f.store.CreateOfflinePayment(ctx, &model.OfflinePaymentModel{
		OfflinePaymentStudentID: sid,
		OfflinePaymentAmount:    d("50"),
		OfflinePaymentMonths:    pq.StringArray{"Jan"},
		OfflinePaymentMode:      model.OfflinePaymentModeCash,
		OfflinePaymentReceiptNo: "RCPT-jan-offline",
		OfflinePaymentPaidAt:    f.now,
	}))

	ledger, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan"}, ledger.PaidMonths)
	assert.True(t, d("150").Equal(ledger.TotalPaid), "total %s", ledger.TotalPaid)
	assert.True(t, ledger.OnlinePaidTotal.Add(ledger.OfflinePaidTotal).Equal(ledger.TotalPaid))
	assert.Len(t, ledger.OnlinePayments, 1)
	assert.Len(t, ledger.OfflinePayments, 1)
}

func TestMergeLedger_Idempotent(t *testing.T) {
	f := newFixture(t)
	sid := f.student("nadia", 7)
	f.payOffline(t, sid, "100", "2026-02", "2026-01")
	f.successOnline(t, sid, "100", "2026-03")

	ctx := context.Background()
	a, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)
	b, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)

	assert.Equal(t, a.PaidMonths, b.PaidMonths)
	assert.True(t, a.TotalPaid.Equal(b.TotalPaid))
}

func TestMergeLedger_UnknownStudentIsEmpty(t *testing.T) {
	f := newFixture(t)
	ledger, err := f.svc.MergeLedger(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ledger.TotalPaid.IsZero())
	assert.Empty(t, ledger.PaidMonths)

	_, err = f.svc.StudentLedger(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
