package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fee_structures/model"
	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

const testServerKey = "SB-Mid-server-test"

type fakeGateway struct {
	mu     sync.Mutex
	err    error
	orders []OrderRequest
}

func (g *fakeGateway) CreateOrder(_ context.Context, req OrderRequest) (*OrderRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders = append(g.orders, req)
	if g.err != nil {
		return nil, g.err
	}
	return &OrderRef{OrderID: req.OrderID, Token: "tok-" + req.OrderID, RedirectURL: "https://pay.test/" + req.OrderID}, nil
}

func (g *fakeGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return verifyMidtransSignature(testServerKey, orderID, statusCode, grossAmount, signature)
}

func sign(orderID, statusCode, grossAmount string) string {
	return sha512sum(orderID + statusCode + grossAmount + testServerKey)
}

type fixture struct {
	svc   *FeeService
	store *repository.MemoryLedgerStore
	gw    *fakeGateway
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: repository.NewMemoryLedgerStore(),
		gw:    &fakeGateway{},
		now:   time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewFeeService(Options{
		Store:             f.store,
		Gateway:           f.gw,
		Now:               func() time.Time { return f.now },
		InstallmentMonths: 12,
		OrderTTL:          24 * time.Hour,
	})
	return f
}

func (f *fixture) fee(level int16, amount string) {
	f.store.PutFeeStructure(feeModel.FeeStructureModel{
		FeeStructureClassLevel: constants.ClassLevel(level),
		FeeStructureAmount:     decimal.RequireFromString(amount),
	})
}

func (f *fixture) student(name string, level int16) uuid.UUID {
	st := f.store.PutStudent(studentModel.StudentModel{
		StudentName:        name,
		StudentAdmissionNo: "ADM-" + name,
		StudentClassLabel:  fmt.Sprintf("Class %d", level),
		StudentClassLevel:  constants.ClassLevel(level),
		StudentIsActive:    true,
	})
	return st.StudentID
}

func (f *fixture) payOffline(t *testing.T, studentID uuid.UUID, amount string, months ...string) *model.OfflinePaymentModel {
	t.Helper()
	p, err := f.svc.RecordOfflinePayment(context.Background(), OfflinePaymentInput{
		StudentID: studentID,
		Amount:    decimal.RequireFromString(amount),
		Months:    months,
	})
	require.NoError(t, err)
	return p
}

// successOnline inserts a verified online payment directly into the store.
func (f *fixture) successOnline(t *testing.T, studentID uuid.UUID, amount string, months ...string) *model.OnlinePaymentModel {
	t.Helper()
	p := &model.OnlinePaymentModel{
		OnlinePaymentID:         uuid.New(),
		OnlinePaymentStudentID:  studentID,
		OnlinePaymentAmountPaid: decimal.RequireFromString(amount),
		OnlinePaymentType:       model.OnlinePaymentTypeCustom,
		OnlinePaymentMonths:     pq.StringArray(months),
		OnlinePaymentStatus:     model.OnlinePaymentStatusSuccess,
		OnlinePaymentOrderID:    "FEE-" + uuid.NewString(),
	}
	ctx := context.Background()
	require.NoError(t, f.store.CreateOnlinePayment(ctx, p))
	claims := make([]model.PaymentMonthClaimModel, 0, len(months))
	for _, m := range months {
		claims = append(claims, model.PaymentMonthClaimModel{
			PaymentMonthClaimStudentID: studentID,
			PaymentMonthClaimMonth:     m,
			PaymentMonthClaimSource:    model.PaymentSourceOnline,
			PaymentMonthClaimPaymentID: p.OnlinePaymentID,
		})
	}
	require.NoError(t, f.store.InsertClaims(ctx, claims))
	return p
}

func isConflict(err error, months ...string) bool {
	got, ok := ConflictingMonths(err)
	if !ok {
		return false
	}
	if len(months) == 0 {
		return true
	}
	if len(got) != len(months) {
		return false
	}
	for i := range got {
		if got[i] != months[i] {
			return false
		}
	}
	return true
}

var errBoom = errors.New("boom")
