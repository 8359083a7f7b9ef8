package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ChargeRequest параметры списания
type ChargeRequest struct {
	AmountCents    int64
	Token          string // payment method id, полученный на клиенте
	Description    string
	ReceiptEmail   string
	IdempotencyKey string
	Metadata       map[string]string
}

// Client списание и возврат платежей через Stripe PaymentIntents
type Client struct {
	intents  paymentintent.Client
	refunds  refund.Client
	currency string
	log      Logger
}

// NewClient создает клиента поверх стандартного API backend Stripe
func NewClient(secretKey, currency string, log Logger) *Client {
	return NewClientWithBackend(stripe.GetBackend(stripe.APIBackend), secretKey, currency, log)
}

// NewClientWithBackend создает клиента с явным backend (используется в тестах)
func NewClientWithBackend(backend stripe.Backend, secretKey, currency string, log Logger) *Client {
	return &Client{
		intents:  paymentintent.Client{B: backend, Key: secretKey},
		refunds:  refund.Client{B: backend, Key: secretKey},
		currency: currency,
		log:      log,
	}
}

// Charge создает и сразу подтверждает PaymentIntent. Возвращает ID платежа.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(c.currency),
		PaymentMethod: stripe.String(req.Token),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	intent, err := c.intents.New(params)
	if err != nil {
		return "", classify(err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		c.log.Warn("Payments: intent %s finished with status %s", intent.ID, intent.Status)
		return intent.ID, fmt.Errorf("%w: status %s", ErrNotCompleted, intent.Status)
	}

	c.log.Info("Payments: charged %d %s, intent=%s", req.AmountCents, c.currency, intent.ID)
	return intent.ID, nil
}

// Refund возвращает полную сумму платежа
func (c *Client) Refund(ctx context.Context, paymentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentID),
	}
	params.Context = ctx

	if _, err := c.refunds.New(params); err != nil {
		return classify(err)
	}

	c.log.Info("Payments: refunded intent=%s", paymentID)
	return nil
}

func classify(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
		return fmt.Errorf("%w: %s", ErrDeclined, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %v", ErrProcessor, err)
}
