// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "schoolku_backend/internals/features/finance/payments/model"
	svc "schoolku_backend/internals/features/finance/payments/service"
)

/* ===================== REQUESTS ===================== */

// POST /fees/students/:id/check-months
type CheckMonthsRequest struct {
	Months []string `json:"months" validate:"required,min=1,max=24,dive,required,max=40"`
}

// POST /fees/offline-payments
type RecordOfflinePaymentRequest struct {
	StudentID uuid.UUID       `json:"student_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Months    []string        `json:"months" validate:"required,min=1,max=24,dive,required,max=40"`
	Mode      string          `json:"mode" validate:"omitempty,oneof=cash cheque bank_transfer other"`
	Remark    *string         `json:"remark" validate:"omitempty,max=500"`
	PaidAt    *time.Time      `json:"paid_at"`
}

func (r RecordOfflinePaymentRequest) ToInput(collectorID *uuid.UUID, collectorName string) svc.OfflinePaymentInput {
	var remark *string
	if r.Remark != nil {
		if t := strings.TrimSpace(*r.Remark); t != "" {
			remark = &t
		}
	}
	return svc.OfflinePaymentInput{
		StudentID:     r.StudentID,
		Amount:        r.Amount,
		Months:        r.Months,
		Mode:          model.OfflinePaymentMode(strings.ToLower(strings.TrimSpace(r.Mode))),
		CollectorID:   collectorID,
		CollectorName: collectorName,
		Remark:        remark,
		PaidAt:        r.PaidAt,
	}
}

// POST /fees/online-orders
type OpenOnlineOrderRequest struct {
	StudentID   uuid.UUID        `json:"student_id" validate:"required"`
	PaymentType string           `json:"payment_type" validate:"required,oneof=full half custom"`
	Months      []string         `json:"months" validate:"required,min=1,max=24,dive,required,max=40"`
	Amount      *decimal.Decimal `json:"amount"`
}

func (r OpenOnlineOrderRequest) ToInput(createdBy *uuid.UUID) svc.OnlineOrderInput {
	return svc.OnlineOrderInput{
		StudentID:   r.StudentID,
		PaymentType: model.OnlinePaymentType(r.PaymentType),
		Months:      r.Months,
		Amount:      r.Amount,
		CreatedBy:   createdBy,
	}
}

// Midtrans notification body. gross_amount arrives as a string ("120000.00").
type GatewayNotificationRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
	TransactionTime   string `json:"transaction_time"`
	PaymentType       string `json:"payment_type"`
}

func (r GatewayNotificationRequest) ToNotification(raw []byte) svc.GatewayNotification {
	return svc.GatewayNotification{
		OrderID:           strings.TrimSpace(r.OrderID),
		StatusCode:        strings.TrimSpace(r.StatusCode),
		GrossAmount:       strings.TrimSpace(r.GrossAmount),
		SignatureKey:      strings.TrimSpace(r.SignatureKey),
		TransactionStatus: r.TransactionStatus,
		FraudStatus:       r.FraudStatus,
		TransactionID:     r.TransactionID,
		Raw:               raw,
	}
}

/* ===================== RESPONSES ===================== */

type OnlinePaymentResponse struct {
	OnlinePaymentID            uuid.UUID                 `json:"online_payment_id"`
	OnlinePaymentStudentID     uuid.UUID                 `json:"online_payment_student_id"`
	OnlinePaymentAmountPaid    decimal.Decimal           `json:"online_payment_amount_paid"`
	OnlinePaymentType          model.OnlinePaymentType   `json:"online_payment_type"`
	OnlinePaymentMonths        []string                  `json:"online_payment_months"`
	OnlinePaymentStatus        model.OnlinePaymentStatus `json:"online_payment_status"`
	OnlinePaymentOrderID       string                    `json:"online_payment_order_id"`
	OnlinePaymentTransactionID *string                   `json:"online_payment_transaction_id,omitempty"`
	OnlinePaymentRedirectURL   *string                   `json:"online_payment_redirect_url,omitempty"`
	OnlinePaymentPaidAt        *time.Time                `json:"online_payment_paid_at,omitempty"`
	OnlinePaymentFailureReason *string                   `json:"online_payment_failure_reason,omitempty"`
	OnlinePaymentCreatedAt     time.Time                 `json:"online_payment_created_at"`
}

func FromOnlineModel(m *model.OnlinePaymentModel) OnlinePaymentResponse {
	return OnlinePaymentResponse{
		OnlinePaymentID:            m.OnlinePaymentID,
		OnlinePaymentStudentID:     m.OnlinePaymentStudentID,
		OnlinePaymentAmountPaid:    m.OnlinePaymentAmountPaid,
		OnlinePaymentType:          m.OnlinePaymentType,
		OnlinePaymentMonths:        nonNil(m.OnlinePaymentMonths),
		OnlinePaymentStatus:        m.OnlinePaymentStatus,
		OnlinePaymentOrderID:       m.OnlinePaymentOrderID,
		OnlinePaymentTransactionID: m.OnlinePaymentTransactionID,
		OnlinePaymentRedirectURL:   m.OnlinePaymentRedirectURL,
		OnlinePaymentPaidAt:        m.OnlinePaymentPaidAt,
		OnlinePaymentFailureReason: m.OnlinePaymentFailureReason,
		OnlinePaymentCreatedAt:     m.OnlinePaymentCreatedAt,
	}
}

func FromOnlineModels(list []model.OnlinePaymentModel) []OnlinePaymentResponse {
	out := make([]OnlinePaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromOnlineModel(&list[i]))
	}
	return out
}

type OfflinePaymentResponse struct {
	OfflinePaymentID            uuid.UUID                `json:"offline_payment_id"`
	OfflinePaymentStudentID     uuid.UUID                `json:"offline_payment_student_id"`
	OfflinePaymentAmount        decimal.Decimal          `json:"offline_payment_amount"`
	OfflinePaymentMonths        []string                 `json:"offline_payment_months"`
	OfflinePaymentMode          model.OfflinePaymentMode `json:"offline_payment_mode"`
	OfflinePaymentCollectorID   *uuid.UUID               `json:"offline_payment_collector_id,omitempty"`
	OfflinePaymentCollectorName string                   `json:"offline_payment_collector_name"`
	OfflinePaymentRemark        *string                  `json:"offline_payment_remark,omitempty"`
	OfflinePaymentReceiptNo     string                   `json:"offline_payment_receipt_no"`
	OfflinePaymentPaidAt        time.Time                `json:"offline_payment_paid_at"`
	OfflinePaymentCreatedAt     time.Time                `json:"offline_payment_created_at"`
}

func FromOfflineModel(m *model.OfflinePaymentModel) OfflinePaymentResponse {
	return OfflinePaymentResponse{
		OfflinePaymentID:            m.OfflinePaymentID,
		OfflinePaymentStudentID:     m.OfflinePaymentStudentID,
		OfflinePaymentAmount:        m.OfflinePaymentAmount,
		OfflinePaymentMonths:        nonNil(m.OfflinePaymentMonths),
		OfflinePaymentMode:          m.OfflinePaymentMode,
		OfflinePaymentCollectorID:   m.OfflinePaymentCollectorID,
		OfflinePaymentCollectorName: m.OfflinePaymentCollectorName,
		OfflinePaymentRemark:        m.OfflinePaymentRemark,
		OfflinePaymentReceiptNo:     m.OfflinePaymentReceiptNo,
		OfflinePaymentPaidAt:        m.OfflinePaymentPaidAt,
		OfflinePaymentCreatedAt:     m.OfflinePaymentCreatedAt,
	}
}

func FromOfflineModels(list []model.OfflinePaymentModel) []OfflinePaymentResponse {
	out := make([]OfflinePaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromOfflineModel(&list[i]))
	}
	return out
}

type LedgerResponse struct {
	StudentID        uuid.UUID                `json:"student_id"`
	OnlinePayments   []OnlinePaymentResponse  `json:"online_payments"`
	OfflinePayments  []OfflinePaymentResponse `json:"offline_payments"`
	OnlinePaidTotal  decimal.Decimal          `json:"online_paid_total"`
	OfflinePaidTotal decimal.Decimal          `json:"offline_paid_total"`
	TotalPaid        decimal.Decimal          `json:"total_paid"`
	PaidMonths       []string                 `json:"paid_months"`
}

func FromLedger(l *svc.Ledger) LedgerResponse {
	return LedgerResponse{
		StudentID:        l.StudentID,
		OnlinePayments:   FromOnlineModels(l.OnlinePayments),
		OfflinePayments:  FromOfflineModels(l.OfflinePayments),
		OnlinePaidTotal:  l.OnlinePaidTotal,
		OfflinePaidTotal: l.OfflinePaidTotal,
		TotalPaid:        l.TotalPaid,
		PaidMonths:       nonNil(l.PaidMonths),
	}
}

type StudentStatusResponse struct {
	svc.StudentFeeRow
	Ledger LedgerResponse `json:"ledger"`
}

func FromStudentStatus(s *svc.StudentFeeStatus) StudentStatusResponse {
	return StudentStatusResponse{StudentFeeRow: s.StudentFeeRow, Ledger: FromLedger(s.Ledger)}
}

type OnlineOrderResponse struct {
	Payment     OnlinePaymentResponse `json:"payment"`
	SnapToken   string                `json:"snap_token"`
	RedirectURL string                `json:"redirect_url"`
}

func FromOnlineOrder(o *svc.OnlineOrder) OnlineOrderResponse {
	return OnlineOrderResponse{
		Payment:     FromOnlineModel(o.Payment),
		SnapToken:   o.Order.Token,
		RedirectURL: o.Order.RedirectURL,
	}
}

type DefaulterGroup struct {
	ClassKey string              `json:"class_key"`
	Count    int                 `json:"count"`
	TotalDue decimal.Decimal     `json:"total_due"`
	Students []svc.StudentFeeRow `json:"students"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
