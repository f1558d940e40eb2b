// file: internals/features/finance/payments/model/online_payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

/*
  online_payments = order gateway (Midtrans Snap)
  - row dibuat status "created" saat order dibuka
  - hanya notifikasi yang signature-nya valid yang memindahkan ke "success"
  - ledger hanya membaca status "success"
*/

type OnlinePaymentModel struct {
	OnlinePaymentID        uuid.UUID `gorm:"column:online_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"online_payment_id"`
	OnlinePaymentStudentID uuid.UUID `gorm:"column:online_payment_student_id;type:uuid;not null;index:idx_online_payments_student_status,priority:1" json:"online_payment_student_id"`

	OnlinePaymentAmountPaid decimal.Decimal     `gorm:"column:online_payment_amount_paid;type:numeric(14,2);not null;default:0" json:"online_payment_amount_paid"`
	OnlinePaymentType       OnlinePaymentType   `gorm:"column:online_payment_type;type:varchar(10);not null" json:"online_payment_type"`
	OnlinePaymentMonths     pq.StringArray      `gorm:"column:online_payment_months;type:text[];not null" json:"online_payment_months"`
	OnlinePaymentStatus     OnlinePaymentStatus `gorm:"column:online_payment_status;type:varchar(10);not null;default:'created';index:idx_online_payments_student_status,priority:2" json:"online_payment_status"`

	// Gateway
	OnlinePaymentOrderID       string         `gorm:"column:online_payment_order_id;type:varchar(64);not null;uniqueIndex:uq_online_payments_order_id" json:"online_payment_order_id"`
	OnlinePaymentTransactionID *string        `gorm:"column:online_payment_transaction_id;type:varchar(100)" json:"online_payment_transaction_id,omitempty"`
	OnlinePaymentSignature     *string        `gorm:"column:online_payment_signature;type:varchar(256)" json:"-"`
	OnlinePaymentSnapToken     *string        `gorm:"column:online_payment_snap_token;type:varchar(100)" json:"online_payment_snap_token,omitempty"`
	OnlinePaymentRedirectURL   *string        `gorm:"column:online_payment_redirect_url;type:text" json:"online_payment_redirect_url,omitempty"`
	OnlinePaymentRawNotif      datatypes.JSON `gorm:"column:online_payment_raw_notification;type:jsonb" json:"online_payment_raw_notification,omitempty"`

	OnlinePaymentPaidAt        *time.Time `gorm:"column:online_payment_paid_at;type:timestamptz" json:"online_payment_paid_at,omitempty"`
	OnlinePaymentFailureReason *string    `gorm:"column:online_payment_failure_reason;type:text" json:"online_payment_failure_reason,omitempty"`
	OnlinePaymentCreatedBy     *uuid.UUID `gorm:"column:online_payment_created_by;type:uuid" json:"online_payment_created_by,omitempty"`

	OnlinePaymentCreatedAt time.Time `gorm:"column:online_payment_created_at;type:timestamptz;not null;autoCreateTime;index" json:"online_payment_created_at"`
	OnlinePaymentUpdatedAt time.Time `gorm:"column:online_payment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"online_payment_updated_at"`
}

func (OnlinePaymentModel) TableName() string { return "online_payments" }
