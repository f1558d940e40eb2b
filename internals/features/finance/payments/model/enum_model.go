package model

type OnlinePaymentStatus string
type OnlinePaymentType string
type OfflinePaymentMode string
type PaymentSource string
type GatewayProvider string
type GatewayEventStatus string

const (
	OnlinePaymentStatusCreated OnlinePaymentStatus = "created"
	OnlinePaymentStatusSuccess OnlinePaymentStatus = "success"
	OnlinePaymentStatusFailed  OnlinePaymentStatus = "failed"
)

const (
	OnlinePaymentTypeFull   OnlinePaymentType = "full"
	OnlinePaymentTypeHalf   OnlinePaymentType = "half"
	OnlinePaymentTypeCustom OnlinePaymentType = "custom"
)

const (
	OfflinePaymentModeCash         OfflinePaymentMode = "cash"
	OfflinePaymentModeCheque       OfflinePaymentMode = "cheque"
	OfflinePaymentModeBankTransfer OfflinePaymentMode = "bank_transfer"
	OfflinePaymentModeOther        OfflinePaymentMode = "other"
)

const (
	PaymentSourceOnline  PaymentSource = "online"
	PaymentSourceOffline PaymentSource = "offline"
)

const (
	GatewayProviderMidtrans GatewayProvider = "midtrans"
)

// status processing notifikasi gateway
const (
	GatewayEventStatusReceived  GatewayEventStatus = "received"
	GatewayEventStatusProcessed GatewayEventStatus = "processed"
	GatewayEventStatusIgnored   GatewayEventStatus = "ignored"
	GatewayEventStatusRejected  GatewayEventStatus = "rejected"
	GatewayEventStatusFailed    GatewayEventStatus = "failed"
)
