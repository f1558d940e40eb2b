package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schoolku_backend/internals/configs"
)

/* =========================================================
   Midtrans Snap gateway
========================================================= */

type MidtransGateway struct {
	client    snap.Client
	serverKey string
}

// NewMidtransGateway dibangun sekali saat bootstrap lalu di-inject ke FeeService.
func NewMidtransGateway(cfg configs.MidtransConfig) *MidtransGateway {
	g := &MidtransGateway{serverKey: cfg.ServerKey}
	env := midtrans.Sandbox
	if cfg.UseProduction {
		env = midtrans.Production
	}
	g.client.New(cfg.ServerKey, env)
	return g
}

var _ Gateway = (*MidtransGateway)(nil)

func (g *MidtransGateway) CreateOrder(ctx context.Context, req OrderRequest) (*OrderRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(g.serverKey) == "" {
		return nil, errors.New("midtrans server key is not configured")
	}
	if req.Currency != "" && !strings.EqualFold(req.Currency, "IDR") {
		return nil, fmt.Errorf("midtrans: unsupported currency %q", req.Currency)
	}
	if !req.Amount.IsPositive() || !req.Amount.Equal(req.Amount.Truncate(0)) {
		return nil, ErrFractionalAmount
	}
	if req.OrderID == "" {
		return nil, errors.New("order id is required")
	}

	amount := req.Amount.IntPart()
	sreq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.FirstName,
			LName: req.Customer.LastName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       req.OrderID,
				Price:    amount,
				Qty:      1,
				Name:     truncate(defaultString(req.Description, "School Fee"), 50),
				Category: "FEE",
			},
		},
	}

	resp, merr := g.client.CreateTransaction(sreq)
	if merr != nil {
		return nil, fmt.Errorf("%w: %s", ErrGateway, merr.Message)
	}
	return &OrderRef{OrderID: req.OrderID, Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifySignature checks SHA512(order_id + status_code + gross_amount + server_key).
func (g *MidtransGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return verifyMidtransSignature(g.serverKey, orderID, statusCode, grossAmount, signature)
}

func verifyMidtransSignature(serverKey, orderID, statusCode, grossAmount, signature string) bool {
	want := strings.ToLower(strings.TrimSpace(signature))
	if want == "" || serverKey == "" {
		return false
	}
	got := sha512sum(orderID + statusCode + grossAmount + serverKey)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

/* =========================================================
   Utils
========================================================= */

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

// truncate keeps at most n runes.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func defaultString(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}
