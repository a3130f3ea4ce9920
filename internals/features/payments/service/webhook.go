package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/sirupsen/logrus"

	"skb_backend/internals/helpers/apperror"
)

const (
	StatusPaid     = "paid"
	StatusRefunded = "refunded"
)

// Notification is the subset of the Midtrans HTTP notification we use.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
}

// StatusUpdater is implemented by whatever owns the order ids.
type StatusUpdater interface {
	MarkPayment(ctx context.Context, orderID, status string) error
}

// MapStatus converts a Midtrans transaction status; ok=false means ignore.
func MapStatus(transactionStatus, fraudStatus string) (string, bool) {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return StatusPaid, true
	case "capture":
		if strings.EqualFold(fraudStatus, "challenge") {
			return "", false
		}
		return StatusPaid, true
	case "refund", "partial_refund":
		return StatusRefunded, true
	default:
		return "", false
	}
}

// Signature is sha512(order_id + status_code + gross_amount + server_key).
func Signature(n Notification, serverKey string) string {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

type WebhookService struct {
	serverKey string
	updater   StatusUpdater
}

func NewWebhookService(serverKey string, updater StatusUpdater) *WebhookService {
	return &WebhookService{serverKey: strings.TrimSpace(serverKey), updater: updater}
}

// Handle verifies and applies one notification. Unknown statuses are
// acknowledged without changes so Midtrans stops retrying.
func (s *WebhookService) Handle(ctx context.Context, n Notification) error {
	if strings.TrimSpace(n.OrderID) == "" || strings.TrimSpace(n.TransactionStatus) == "" {
		var fe map[string][]string
		if n.OrderID == "" {
			fe = map[string][]string{"order_id": {"is required"}}
		} else {
			fe = map[string][]string{"transaction_status": {"is required"}}
		}
		return apperror.Validation(fe)
	}
	if s.serverKey == "" {
		return apperror.Forbidden("payments are not configured")
	}
	want := Signature(n, s.serverKey)
	if subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(n.SignatureKey))) != 1 {
		return apperror.Forbidden("invalid notification signature")
	}

	log := logrus.WithFields(logrus.Fields{
		"order_id":           n.OrderID,
		"transaction_status": n.TransactionStatus,
	})
	status, ok := MapStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		log.Info("payment notification ignored")
		return nil
	}
	if err := s.updater.MarkPayment(ctx, n.OrderID, status); err != nil {
		return err
	}
	log.WithField("payment_status", status).Info("payment status updated")
	return nil
}
