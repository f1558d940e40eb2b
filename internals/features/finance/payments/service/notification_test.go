package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

func (f *fixture) openOrder(t *testing.T, months ...string) (*OnlineOrder, string) {
	t.Helper()
	f.fee(10, "12000")
	sid := f.student("order-"+months[0], 10)
	o, err := f.svc.OpenOnlineOrder(context.Background(), OnlineOrderInput{
		StudentID:   sid,
		PaymentType: model.OnlinePaymentTypeFull,
		Months:      months,
	})
	require.NoError(t, err)
	return o, o.Payment.OnlinePaymentOrderID
}

func notif(orderID, status, gross string) GatewayNotification {
	return GatewayNotification{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       gross,
		SignatureKey:      sign(orderID, "200", gross),
		TransactionStatus: status,
		TransactionID:     "trx-" + orderID,
		Raw:               []byte(`{"order_id":"` + orderID + `"}`),
	}
}

func TestHandleGatewayNotification_Settlement(t *testing.T) {
	f := newFixture(t)
	o, orderID := f.openOrder(t, "January", "February")
	ctx := context.Background()

	res, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "settlement", "12000.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, model.OnlinePaymentStatusSuccess, res.PaymentStatus)

	ledger, err := f.svc.MergeLedger(ctx, o.Payment.OnlinePaymentStudentID)
	require.NoError(t, err)
	assert.True(t, d("12000").Equal(ledger.TotalPaid))
	assert.Equal(t, []string{"February", "January"}, ledger.PaidMonths)

	p, err := f.store.GetOnlinePaymentByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, p.OnlinePaymentPaidAt)
	require.NotNil(t, p.OnlinePaymentTransactionID)
	assert.Equal(t, "trx-"+orderID, *p.OnlinePaymentTransactionID)

	again, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "settlement", "12000.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, again.Outcome)

	// success is terminal
	late, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "expire", "12000.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, late.Outcome)
	assert.Equal(t, model.OnlinePaymentStatusSuccess, late.PaymentStatus)

	events := f.store.GatewayEvents()
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.True(t, ev.GatewayEventSignatureValid)
		assert.Equal(t, model.GatewayEventStatusProcessed, ev.GatewayEventStatus)
	}
}

func TestHandleGatewayNotification_InvalidSignature(t *testing.T) {
	f := newFixture(t)
	o, orderID := f.openOrder(t, "March")
	ctx := context.Background()

	n := notif(orderID, "settlement", "12000.00")
	n.GrossAmount = "1.00"
	_, err := f.svc.HandleGatewayNotification(ctx, n)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	p, err := f.store.GetOnlinePaymentByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OnlinePaymentStatusCreated, p.OnlinePaymentStatus)

	ledger, err := f.svc.MergeLedger(ctx, o.Payment.OnlinePaymentStudentID)
	require.NoError(t, err)
	assert.Empty(t, ledger.PaidMonths)

	events := f.store.GatewayEvents()
	require.Len(t, events, 1)
	assert.False(t, events[0].GatewayEventSignatureValid)
	assert.Equal(t, model.GatewayEventStatusRejected, events[0].GatewayEventStatus)
}

func TestHandleGatewayNotification_UnknownOrderIsIgnored(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.HandleGatewayNotification(context.Background(), notif("FEE-404", "settlement", "10.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, res.Outcome)
}

func TestHandleGatewayNotification_PendingAndChallenge(t *testing.T) {
	f := newFixture(t)
	_, orderID := f.openOrder(t, "April")
	ctx := context.Background()

	res, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "pending", "12000.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomePending, res.Outcome)

	n := notif(orderID, "capture", "12000.00")
	n.FraudStatus = "challenge"
	res, err = f.svc.HandleGatewayNotification(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, OutcomePending, res.Outcome)
	assert.Equal(t, model.OnlinePaymentStatusCreated, res.PaymentStatus)
}

func TestHandleGatewayNotification_FailureReleasesMonths(t *testing.T) {
	f := newFixture(t)
	o, orderID := f.openOrder(t, "May")
	ctx := context.Background()

	res, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "deny", "12000.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)

	p, err := f.store.GetOnlinePaymentByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, p.OnlinePaymentFailureReason)
	assert.Equal(t, "gateway deny", *p.OnlinePaymentFailureReason)

	f.payOffline(t, o.Payment.OnlinePaymentStudentID, "500", "May")
}

func TestHandleGatewayNotification_LateSettlement(t *testing.T) {
	t.Run("reclaims free months", func(t *testing.T) {
		f := newFixture(t)
		o, orderID := f.openOrder(t, "June")
		ctx := context.Background()

		_, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "expire", "12000.00"))
		require.NoError(t, err)

		res, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "settlement", "12000.00"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeSucceeded, res.Outcome)

		err = f.svc.CheckMonths(ctx, o.Payment.OnlinePaymentStudentID, []string{"June"})
		assert.True(t, isConflict(err, "June"))
	})

	t.Run("conflicts when month was paid meanwhile", func(t *testing.T) {
		f := newFixture(t)
		o, orderID := f.openOrder(t, "June")
		ctx := context.Background()

		_, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "cancel", "12000.00"))
		require.NoError(t, err)
		f.payOffline(t, o.Payment.OnlinePaymentStudentID, "1000", "June")

		res, err := f.svc.HandleGatewayNotification(ctx, notif(orderID, "settlement", "12000.00"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeConflict, res.Outcome)
		assert.Equal(t, model.OnlinePaymentStatusFailed, res.PaymentStatus)

		ledger, err := f.svc.MergeLedger(ctx, o.Payment.OnlinePaymentStudentID)
		require.NoError(t, err)
		assert.True(t, d("1000").Equal(ledger.TotalPaid))
	})
}

// deletedStudentStore behaves as if the student row was hard-deleted.
type deletedStudentStore struct {
	*repository.MemoryLedgerStore
}

func (deletedStudentStore) WithStudentLock(context.Context, uuid.UUID, func(repository.LedgerStore) error) error {
	return repository.ErrStudentNotFound
}

func TestHandleGatewayNotification_SettlesForDeletedStudent(t *testing.T) {
	f := newFixture(t)
	_, orderID := f.openOrder(t, "March")
	ctx := context.Background()

	svc := NewFeeService(Options{
		Store:             deletedStudentStore{f.store},
		Gateway:           f.gw,
		Now:               func() time.Time { return f.now },
		InstallmentMonths: 12,
		OrderTTL:          24 * time.Hour,
	})
	res, err := svc.HandleGatewayNotification(ctx, notif(orderID, "settlement", "12000.00"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, res.Outcome)

	p, err := f.store.GetOnlinePaymentByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OnlinePaymentStatusSuccess, p.OnlinePaymentStatus)
	require.NotNil(t, p.OnlinePaymentPaidAt)
}

func TestExpireStaleOrders(t *testing.T) {
	f := newFixture(t)
	o, orderID := f.openOrder(t, "July")
	ctx := context.Background()

	// rows are stamped with wall-clock time
	f.now = time.Now()
	n, err := f.svc.ExpireStaleOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.now = time.Now().Add(25 * time.Hour)
	n, err = f.svc.ExpireStaleOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := f.store.GetOnlinePaymentByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OnlinePaymentStatusFailed, p.OnlinePaymentStatus)

	f.payOffline(t, o.Payment.OnlinePaymentStudentID, "100", "July")

	n, err = f.svc.ExpireStaleOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMapMidtransStatus(t *testing.T) {
	tests := []struct {
		status, fraud string
		want          model.OnlinePaymentStatus
	}{
		{"settlement", "", model.OnlinePaymentStatusSuccess},
		{"capture", "accept", model.OnlinePaymentStatusSuccess},
		{"capture", "challenge", ""},
		{"capture", "deny", model.OnlinePaymentStatusFailed},
		{"Expire", "", model.OnlinePaymentStatusFailed},
		{"pending", "", ""},
		{"refund", "", ""},
	}
	for _, tt := range tests {
		got, _ := mapMidtransStatus(tt.status, tt.fraud)
		assert.Equal(t, tt.want, got, "%s/%s", tt.status, tt.fraud)
	}
}
