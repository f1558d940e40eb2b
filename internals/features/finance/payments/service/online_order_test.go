package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

func TestOpenOnlineOrder_Amounts(t *testing.T) {
	custom := d("2500")
	tests := []struct {
		name    string
		paid    string
		typ     model.OnlinePaymentType
		amount  *string
		want    string
		wantErr error
	}{
		{name: "full is remaining due", paid: "2000", typ: model.OnlinePaymentTypeFull, want: "10000"},
		{name: "full rounds fractional due half-up", paid: "1999.50", typ: model.OnlinePaymentTypeFull, want: "10001"},
		{name: "half is half the fee", paid: "0", typ: model.OnlinePaymentTypeHalf, want: "6000"},
		{name: "half capped at due", paid: "9000", typ: model.OnlinePaymentTypeHalf, want: "3000"},
		{name: "custom", paid: "0", typ: model.OnlinePaymentTypeCustom, amount: strPtr(custom.String()), want: "2500"},
		{name: "custom fractional", paid: "0", typ: model.OnlinePaymentTypeCustom, amount: strPtr("10.50"), wantErr: ErrFractionalAmount},
		{name: "custom missing", paid: "0", typ: model.OnlinePaymentTypeCustom, wantErr: ErrInvalidAmount},
		{name: "nothing due", paid: "12000", typ: model.OnlinePaymentTypeFull, wantErr: ErrNothingDue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fee(10, "12000")
			sid := f.student("hana", 10)
			if tt.paid != "0" {
				f.payOffline(t, sid, tt.paid, "Earlier")
			}
			in := OnlineOrderInput{StudentID: sid, PaymentType: tt.typ, Months: []string{"July"}}
			if tt.amount != nil {
				a := d(*tt.amount)
				in.Amount = &a
			}

			got, err := f.svc.OpenOnlineOrder(context.Background(), in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.gw.orders)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got.Payment.OnlinePaymentAmountPaid), "amount %s", got.Payment.OnlinePaymentAmountPaid)
			require.Len(t, f.gw.orders, 1)
			assert.True(t, d(tt.want).Equal(f.gw.orders[0].Amount))
			assert.Equal(t, "IDR", f.gw.orders[0].Currency)
		})
	}
}

// failingMidCallGateway fails the order row while the gateway call is
// still in flight, the way a racing webhook or reaper would.
type failingMidCallGateway struct {
	*fakeGateway
	store *repository.MemoryLedgerStore
}

func (g failingMidCallGateway) CreateOrder(ctx context.Context, req OrderRequest) (*OrderRef, error) {
	p, err := g.store.GetOnlinePaymentByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	p.OnlinePaymentStatus = model.OnlinePaymentStatusFailed
	if err := g.store.UpdateOnlinePayment(ctx, p); err != nil {
		return nil, err
	}
	return g.fakeGateway.CreateOrder(ctx, req)
}

func TestOpenOnlineOrder_CheckoutWriteKeepsConcurrentStatus(t *testing.T) {
	f := newFixture(t)
	f.fee(10, "12000")
	sid := f.student("eka", 10)
	ctx := context.Background()

	svc := NewFeeService(Options{
		Store:             f.store,
		Gateway:           failingMidCallGateway{fakeGateway: f.gw, store: f.store},
		Now:               func() time.Time { return f.now },
		InstallmentMonths: 12,
		OrderTTL:          24 * time.Hour,
	})
	order, err := svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: model.OnlinePaymentTypeFull, Months: []string{"July"}})
	require.NoError(t, err)

	stored, err := f.store.GetOnlinePaymentByOrderID(ctx, order.Payment.OnlinePaymentOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OnlinePaymentStatusFailed, stored.OnlinePaymentStatus)
	require.NotNil(t, stored.OnlinePaymentSnapToken)
	assert.Equal(t, order.Order.Token, *stored.OnlinePaymentSnapToken)
}

func TestOpenOnlineOrder_CreatedRowIsNotPaid(t *testing.T) {
	f := newFixture(t)
	f.fee(10, "12000")
	sid := f.student("indra", 10)
	ctx := context.Background()

	order, err := f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: model.OnlinePaymentTypeFull, Months: []string{"July", "August"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.Payment.OnlinePaymentOrderID, "FEE-"))
	assert.Equal(t, model.OnlinePaymentStatusCreated, order.Payment.OnlinePaymentStatus)
	assert.Equal(t, "tok-"+order.Payment.OnlinePaymentOrderID, order.Order.Token)

	stored, err := f.store.GetOnlinePaymentByOrderID(ctx, order.Payment.OnlinePaymentOrderID)
	require.NoError(t, err)
	require.NotNil(t, stored.OnlinePaymentSnapToken)
	assert.Equal(t, order.Order.Token, *stored.OnlinePaymentSnapToken)

	ledger, err := f.svc.MergeLedger(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ledger.TotalPaid.IsZero())
	assert.Empty(t, ledger.PaidMonths)

	_, err = f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: model.OnlinePaymentTypeHalf, Months: []string{"August"}})
	assert.True(t, isConflict(err, "August"), "got %v", err)
	assert.Len(t, f.gw.orders, 1)
}

func TestOpenOnlineOrder_GatewayFailureReleasesMonths(t *testing.T) {
	f := newFixture(t)
	f.fee(10, "12000")
	sid := f.student("joko", 10)
	f.gw.err = errBoom
	ctx := context.Background()

	_, err := f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: model.OnlinePaymentTypeFull, Months: []string{"September"}})
	require.ErrorIs(t, err, ErrGateway)
	require.Len(t, f.gw.orders, 1)

	failed, err := f.store.GetOnlinePaymentByOrderID(ctx, f.gw.orders[0].OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OnlinePaymentStatusFailed, failed.OnlinePaymentStatus)
	require.NotNil(t, failed.OnlinePaymentFailureReason)
	assert.Contains(t, *failed.OnlinePaymentFailureReason, "boom")

	f.payOffline(t, sid, "12000", "September")
}

func TestOpenOnlineOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	f.fee(10, "12000")
	sid := f.student("kiki", 10)
	noFee := f.student("lala", 4)
	ctx := context.Background()

	_, err := f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: uuid.New(), PaymentType: model.OnlinePaymentTypeFull, Months: []string{"July"}})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: noFee, PaymentType: model.OnlinePaymentTypeFull, Months: []string{"July"}})
	assert.ErrorIs(t, err, ErrFeeStructureNotFound)

	_, err = f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: "weekly", Months: []string{"July"}})
	assert.Error(t, err)

	_, err = f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: model.OnlinePaymentTypeFull})
	assert.ErrorIs(t, err, ErrInvalidMonths)

	f.payOffline(t, sid, "100", "July")
	_, err = f.svc.OpenOnlineOrder(ctx, OnlineOrderInput{StudentID: sid, PaymentType: model.OnlinePaymentTypeFull, Months: []string{"July"}})
	assert.True(t, isConflict(err, "July"), "got %v", err)
	assert.Empty(t, f.gw.orders)
}

func strPtr(s string) *string { return &s }
