package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/sirupsen/logrus"

	"skb_backend/internals/configs"
)

// ErrDisabled is returned when no server key is configured.
var ErrDisabled = errors.New("payments are not configured")

type ChargeRequest struct {
	OrderID  string
	Amount   int64
	ItemID   string
	ItemName string
	Name     string
	Email    string
	Phone    string
}

type Charge struct {
	OrderID     string
	Token       string
	RedirectURL string
}

// Gateway creates checkout sessions for entry fees.
type Gateway interface {
	Enabled() bool
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

// SnapGateway talks to Midtrans Snap.
type SnapGateway struct {
	client snap.Client
}

// NewGateway returns a disabled gateway when the server key is empty.
func NewGateway(cfg configs.MidtransConfig) Gateway {
	key := strings.TrimSpace(cfg.ServerKey)
	if key == "" {
		logrus.Info("midtrans server key not set, entry-fee payments disabled")
		return Disabled{}
	}
	env := midtrans.Sandbox
	if cfg.UseProd {
		env = midtrans.Production
	}
	g := &SnapGateway{}
	g.client.New(key, env)
	return g
}

func (g *SnapGateway) Enabled() bool { return true }

func (g *SnapGateway) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("charge %s: amount must be positive", req.OrderID)
	}
	sreq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    req.ItemID,
			Name:  truncate(req.ItemName, 50),
			Price: req.Amount,
			Qty:   1,
		}},
	}

	resp, merr := g.client.CreateTransaction(sreq)
	if merr != nil {
		return nil, fmt.Errorf("midtrans create transaction: %w", merr)
	}
	return &Charge{OrderID: req.OrderID, Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// Disabled is the gateway used without credentials.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Charge(context.Context, ChargeRequest) (*Charge, error) {
	return nil, ErrDisabled
}

// NewOrderID builds a Midtrans order id; Midtrans caps it at 50 chars.
func NewOrderID(prefix string, now time.Time, suffix string) string {
	id := fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102150405"), suffix)
	return truncate(id, 50)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
