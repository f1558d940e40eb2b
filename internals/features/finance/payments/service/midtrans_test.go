package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/configs"
)

func TestVerifyMidtransSignature(t *testing.T) {
	sig := sha512sum("FEE-1" + "200" + "150000.00" + "server-key")

	assert.True(t, verifyMidtransSignature("server-key", "FEE-1", "200", "150000.00", sig))
	assert.True(t, verifyMidtransSignature("server-key", "FEE-1", "200", "150000.00", strings.ToUpper(sig)))
	assert.False(t, verifyMidtransSignature("server-key", "FEE-1", "200", "150000", sig))
	assert.False(t, verifyMidtransSignature("other-key", "FEE-1", "200", "150000.00", sig))
	assert.False(t, verifyMidtransSignature("server-key", "FEE-1", "200", "150000.00", ""))
	assert.False(t, verifyMidtransSignature("", "FEE-1", "200", "150000.00", sig))
}

func TestMidtransGateway_RejectsBeforeCallingOut(t *testing.T) {
	g := NewMidtransGateway(configs.MidtransConfig{ServerKey: "server-key"})
	ctx := context.Background()

	_, err := g.CreateOrder(ctx, OrderRequest{OrderID: "FEE-1", Amount: d("100.50"), Currency: "IDR"})
	assert.ErrorIs(t, err, ErrFractionalAmount)

	_, err = g.CreateOrder(ctx, OrderRequest{OrderID: "FEE-1", Amount: d("100"), Currency: "USD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported currency")

	unconfigured := NewMidtransGateway(configs.MidtransConfig{})
	_, err = unconfigured.CreateOrder(ctx, OrderRequest{OrderID: "FEE-1", Amount: d("100")})
	assert.Error(t, err)
	assert.False(t, unconfigured.VerifySignature("FEE-1", "200", "100", "abc"))
}

func TestTruncate(t *testing.T) {
	name := "School fee " + strings.Repeat("é", 30) + " (class-10)"
	got := truncate(name, 50)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 50, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(name, got))

	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "日本", truncate("日本語", 2))
	assert.Equal(t, "abc", truncate("abc", 0))
}
