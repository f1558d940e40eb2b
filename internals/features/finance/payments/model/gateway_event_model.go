// file: internals/features/finance/payments/model/gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
  payment_gateway_events = LOG notifikasi gateway
  - append-only, satu row per notifikasi (webhook / verify dari client)
  - disimpan juga kalau signature invalid / order tidak dikenal
*/

type GatewayEventModel struct {
	GatewayEventID        uuid.UUID  `gorm:"column:gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_event_id"`
	GatewayEventPaymentID *uuid.UUID `gorm:"column:gateway_event_payment_id;type:uuid;index" json:"gateway_event_payment_id,omitempty"`

	GatewayEventProvider          GatewayProvider `gorm:"column:gateway_event_provider;type:varchar(20);not null" json:"gateway_event_provider"`
	GatewayEventOrderID           string          `gorm:"column:gateway_event_order_id;type:varchar(64);not null;index" json:"gateway_event_order_id"`
	GatewayEventTransactionID     *string         `gorm:"column:gateway_event_transaction_id;type:varchar(100)" json:"gateway_event_transaction_id,omitempty"`
	GatewayEventTransactionStatus string          `gorm:"column:gateway_event_transaction_status;type:varchar(30)" json:"gateway_event_transaction_status"`
	GatewayEventStatusCode        string          `gorm:"column:gateway_event_status_code;type:varchar(10)" json:"gateway_event_status_code"`
	GatewayEventSignatureValid    bool            `gorm:"column:gateway_event_signature_valid;not null;default:false" json:"gateway_event_signature_valid"`

	GatewayEventPayload datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload,omitempty"`

	GatewayEventStatus GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string            `gorm:"column:gateway_event_error;type:text" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;type:timestamptz;not null" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at;type:timestamptz" json:"gateway_event_processed_at,omitempty"`
}

func (GatewayEventModel) TableName() string { return "payment_gateway_events" }
