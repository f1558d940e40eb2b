// file: internals/features/finance/payments/model/offline_payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// offline_payments = pembayaran tunai/cek/transfer yang dicatat staff (tanpa verifikasi).
type OfflinePaymentModel struct {
	OfflinePaymentID        uuid.UUID `gorm:"column:offline_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"offline_payment_id"`
	OfflinePaymentStudentID uuid.UUID `gorm:"column:offline_payment_student_id;type:uuid;not null;index" json:"offline_payment_student_id"`

	OfflinePaymentAmount decimal.Decimal    `gorm:"column:offline_payment_amount;type:numeric(14,2);not null" json:"offline_payment_amount"`
	OfflinePaymentMonths pq.StringArray     `gorm:"column:offline_payment_months;type:text[];not null" json:"offline_payment_months"`
	OfflinePaymentMode   OfflinePaymentMode `gorm:"column:offline_payment_mode;type:varchar(20);not null;default:'cash'" json:"offline_payment_mode"`

	// Collector (staff yang menerima)
	OfflinePaymentCollectorID   *uuid.UUID `gorm:"column:offline_payment_collector_id;type:uuid" json:"offline_payment_collector_id,omitempty"`
	OfflinePaymentCollectorName string     `gorm:"column:offline_payment_collector_name;type:varchar(120);not null" json:"offline_payment_collector_name"`

	OfflinePaymentRemark    *string   `gorm:"column:offline_payment_remark;type:text" json:"offline_payment_remark,omitempty"`
	OfflinePaymentReceiptNo string    `gorm:"column:offline_payment_receipt_no;type:varchar(64);not null;uniqueIndex:uq_offline_payments_receipt_no" json:"offline_payment_receipt_no"`
	OfflinePaymentPaidAt    time.Time `gorm:"column:offline_payment_paid_at;type:timestamptz;not null" json:"offline_payment_paid_at"`

	OfflinePaymentCreatedAt time.Time `gorm:"column:offline_payment_created_at;type:timestamptz;not null;autoCreateTime" json:"offline_payment_created_at"`
	OfflinePaymentUpdatedAt time.Time `gorm:"column:offline_payment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"offline_payment_updated_at"`
}

func (OfflinePaymentModel) TableName() string { return "offline_payments" }
