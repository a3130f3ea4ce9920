package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/configs"
	"skb_backend/internals/helpers/apperror"
)

type recorder struct {
	calls map[string]string
	err   error
}

func (r *recorder) MarkPayment(ctx context.Context, orderID, status string) error {
	if r.err != nil {
		return r.err
	}
	if r.calls == nil {
		r.calls = map[string]string{}
	}
	r.calls[orderID] = status
	return nil
}

func signed(n Notification, key string) Notification {
	n.SignatureKey = Signature(n, key)
	return n
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		tx, fraud, want string
		ok              bool
	}{
		{"settlement", "", StatusPaid, true},
		{"capture", "accept", StatusPaid, true},
		{"capture", "challenge", "", false},
		{"REFUND", "", StatusRefunded, true},
		{"partial_refund", "", StatusRefunded, true},
		{"pending", "", "", false},
		{"expire", "", "", false},
	}
	for _, tc := range cases {
		got, ok := MapStatus(tc.tx, tc.fraud)
		assert.Equal(t, tc.ok, ok, tc.tx)
		assert.Equal(t, tc.want, got, tc.tx)
	}
}

func TestWebhookHandle(t *testing.T) {
	ctx := context.Background()
	const key = "SB-server-key"
	base := Notification{OrderID: "SKB-20250601-abc", StatusCode: "200", GrossAmount: "50000.00", TransactionStatus: "settlement"}

	rec := &recorder{}
	svc := NewWebhookService(key, rec)

	require.NoError(t, svc.Handle(ctx, signed(base, key)))
	assert.Equal(t, StatusPaid, rec.calls[base.OrderID])

	bad := base
	bad.SignatureKey = "deadbeef"
	assert.True(t, apperror.Is(svc.Handle(ctx, bad), apperror.KindForbidden))

	pending := base
	pending.OrderID = "SKB-other"
	pending.TransactionStatus = "pending"
	require.NoError(t, svc.Handle(ctx, signed(pending, key)))
	assert.NotContains(t, rec.calls, "SKB-other")

	err := svc.Handle(ctx, Notification{TransactionStatus: "settlement"})
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "order_id")

	unconfigured := NewWebhookService("  ", rec)
	assert.True(t, apperror.Is(unconfigured.Handle(ctx, signed(base, key)), apperror.KindForbidden))

	failing := NewWebhookService(key, &recorder{err: apperror.NotFound("no participant for order")})
	assert.True(t, apperror.Is(failing.Handle(ctx, signed(base, key)), apperror.KindNotFound))
}

func TestGatewayAndOrderID(t *testing.T) {
	g := NewGateway(configs.MidtransConfig{})
	assert.False(t, g.Enabled())
	_, err := g.Charge(context.Background(), ChargeRequest{OrderID: "x", Amount: 1})
	assert.True(t, errors.Is(err, ErrDisabled))

	assert.True(t, NewGateway(configs.MidtransConfig{ServerKey: "SB-key"}).Enabled())

	id := NewOrderID("SKB", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), "0123456789abcdef0123456789abcdef")
	assert.Len(t, id, 50)
	assert.Equal(t, "SKB-20250601100000-", id[:19])
}
