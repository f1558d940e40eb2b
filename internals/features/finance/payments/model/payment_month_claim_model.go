package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMonthClaimModel: satu baris per (student, month label) yang sudah diklaim.
// Unique index di (student_id, month_label) menutup race dua pembayaran bulan yang sama.
type PaymentMonthClaimModel struct {
	PaymentMonthClaimID        uuid.UUID     `gorm:"column:payment_month_claim_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_month_claim_id"`
	PaymentMonthClaimStudentID uuid.UUID     `gorm:"column:payment_month_claim_student_id;type:uuid;not null;uniqueIndex:uq_payment_month_claims_student_month,priority:1" json:"payment_month_claim_student_id"`
	PaymentMonthClaimMonth     string        `gorm:"column:payment_month_claim_month_label;type:varchar(40);not null;uniqueIndex:uq_payment_month_claims_student_month,priority:2" json:"payment_month_claim_month_label"`
	PaymentMonthClaimSource    PaymentSource `gorm:"column:payment_month_claim_source;type:varchar(10);not null" json:"payment_month_claim_source"`
	PaymentMonthClaimPaymentID uuid.UUID     `gorm:"column:payment_month_claim_payment_id;type:uuid;not null;index" json:"payment_month_claim_payment_id"`

	PaymentMonthClaimCreatedAt time.Time `gorm:"column:payment_month_claim_created_at;type:timestamptz;not null;autoCreateTime" json:"payment_month_claim_created_at"`
}

func (PaymentMonthClaimModel) TableName() string { return "payment_month_claims" }
