// file: internals/features/finance/payments/repository/ledger_store.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fee_structures/model"
	model "schoolku_backend/internals/features/finance/payments/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrFeeStructureNotFound = errors.New("fee structure not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrDuplicateOrderID     = errors.New("gateway order id already used")
	// ErrMonthClaimed is returned when a claim row collides with an existing
	// (student, month) claim.
	ErrMonthClaimed = errors.New("month already claimed")
)

type StudentFilter struct {
	ClassLevel constants.ClassLevel // 0 = all
	ActiveOnly bool
}

type OnlinePaymentFilter struct {
	StudentID *uuid.UUID
	Status    model.OnlinePaymentStatus
	Offset    int
	Limit     int
}

type OfflinePaymentFilter struct {
	StudentID *uuid.UUID
	Offset    int
	Limit     int
}

// LedgerStore is everything the fee services read and write.
type LedgerStore interface {
	GetStudent(ctx context.Context, id uuid.UUID) (*studentModel.StudentModel, error)
	ListStudents(ctx context.Context, f StudentFilter) ([]studentModel.StudentModel, error)
	GetFeeStructureByLevel(ctx context.Context, lvl constants.ClassLevel) (*feeModel.FeeStructureModel, error)
	ListFeeStructures(ctx context.Context) ([]feeModel.FeeStructureModel, error)

	// ledger reads
	ListSuccessfulOnlinePayments(ctx context.Context, studentID uuid.UUID) ([]model.OnlinePaymentModel, error)
	ListOfflinePayments(ctx context.Context, studentID uuid.UUID) ([]model.OfflinePaymentModel, error)
	ListClaimedMonths(ctx context.Context, studentID uuid.UUID, months []string) ([]string, error)

	// online
	CreateOnlinePayment(ctx context.Context, p *model.OnlinePaymentModel) error
	GetOnlinePaymentByOrderID(ctx context.Context, orderID string) (*model.OnlinePaymentModel, error)
	UpdateOnlinePayment(ctx context.Context, p *model.OnlinePaymentModel) error
	// SetOnlinePaymentCheckout writes only the snap token and redirect URL.
	SetOnlinePaymentCheckout(ctx context.Context, id uuid.UUID, token, redirectURL string) error
	ListOnlinePayments(ctx context.Context, f OnlinePaymentFilter) ([]model.OnlinePaymentModel, int64, error)
	ListStaleOnlineOrders(ctx context.Context, createdBefore time.Time, limit int) ([]model.OnlinePaymentModel, error)

	// offline
	CreateOfflinePayment(ctx context.Context, p *model.OfflinePaymentModel) error
	GetOfflinePayment(ctx context.Context, id uuid.UUID) (*model.OfflinePaymentModel, error)
	DeleteOfflinePayment(ctx context.Context, id uuid.UUID) error
	ListOfflinePaymentsPage(ctx context.Context, f OfflinePaymentFilter) ([]model.OfflinePaymentModel, int64, error)

	// month claims
	InsertClaims(ctx context.Context, claims []model.PaymentMonthClaimModel) error
	ReleaseClaims(ctx context.Context, paymentID uuid.UUID) error

	// gateway log
	CreateGatewayEvent(ctx context.Context, ev *model.GatewayEventModel) error
	UpdateGatewayEvent(ctx context.Context, ev *model.GatewayEventModel) error

	// WithStudentLock runs fn with writes for one student serialized.
	// Returns ErrStudentNotFound when the student does not exist.
	WithStudentLock(ctx context.Context, studentID uuid.UUID, fn func(tx LedgerStore) error) error
}
