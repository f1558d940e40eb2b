// file: internals/features/finance/payments/service/service.go
package service

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/finance/payments/repository"
)

// FeeService owns the fee ledger: merge, guard, due calculation, reports,
// and the write paths for offline and online payments.
type FeeService struct {
	store   repository.LedgerStore
	gateway Gateway
	ids     *snowflake.Node
	log     *zap.Logger
	now     func() time.Time

	currency          string
	installmentMonths int
	orderTTL          time.Duration
	receiptPrefix     string
	orderPrefix       string
}

type Options struct {
	Store   repository.LedgerStore
	Gateway Gateway
	IDNode  *snowflake.Node
	Log     *zap.Logger
	Now     func() time.Time

	Currency          string
	InstallmentMonths int
	OrderTTL          time.Duration
	ReceiptPrefix     string
	OrderPrefix       string
}

// OptionsFromConfig fills the tunables from config; store, gateway and
// node still have to be set by the caller.
func OptionsFromConfig(cfg *configs.Config) Options {
	return Options{
		Currency:          cfg.Midtrans.Currency,
		InstallmentMonths: cfg.Fees.InstallmentMonths,
		OrderTTL:          cfg.Fees.OrderTTL,
		ReceiptPrefix:     cfg.Fees.ReceiptPrefix,
		OrderPrefix:       cfg.Fees.OrderPrefix,
	}
}

func NewFeeService(opt Options) *FeeService {
	s := &FeeService{
		store:             opt.Store,
		gateway:           opt.Gateway,
		ids:               opt.IDNode,
		log:               opt.Log,
		now:               opt.Now,
		currency:          opt.Currency,
		installmentMonths: opt.InstallmentMonths,
		orderTTL:          opt.OrderTTL,
		receiptPrefix:     opt.ReceiptPrefix,
		orderPrefix:       opt.OrderPrefix,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ids == nil {
		s.ids, _ = snowflake.NewNode(1)
	}
	if s.currency == "" {
		s.currency = "IDR"
	}
	if s.installmentMonths <= 0 {
		s.installmentMonths = 12
	}
	if s.orderTTL <= 0 {
		s.orderTTL = 24 * time.Hour
	}
	if s.receiptPrefix == "" {
		s.receiptPrefix = "RCPT"
	}
	if s.orderPrefix == "" {
		s.orderPrefix = "FEE"
	}
	return s
}

func (s *FeeService) Store() repository.LedgerStore { return s.store }

func (s *FeeService) newReceiptNo() string {
	return s.receiptPrefix + "-" + s.ids.Generate().String()
}

func (s *FeeService) newOrderID() string {
	return s.orderPrefix + "-" + s.ids.Generate().String()
}
