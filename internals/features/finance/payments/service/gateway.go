package service

import (
	"context"

	"github.com/shopspring/decimal"
)

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type OrderRequest struct {
	OrderID     string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Customer    Customer
}

type OrderRef struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Gateway is the payment gateway as the fee ledger sees it.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderRef, error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}
