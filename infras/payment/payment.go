package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/shared/constant"
)

const (
	otelScopeName = "payment"

	StatusPaid      = "PAID"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"
)

var ErrInvalidSignature = errors.New("webhook signature mismatch")

type CreateSessionRequest struct {
	Amount      int64  `json:"amount"`
	OrderRef    string `json:"order_ref"`
	Description string `json:"description"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
}

type Session struct {
	PaymentURL string `json:"payment_url"`
	OrderRef   string `json:"order_ref"`
}

// WebhookPayload is the callback body posted by the gateway after checkout.
// Signature covers order ref, status, and amount with the shared secret; the
// payload is never trusted before VerifyWebhook passes.
type WebhookPayload struct {
	OrderRef  string `json:"order_ref"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Signature string `json:"signature"`
}

// Gateway is the hosted-checkout payment provider boundary.
type Gateway interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error)
	GetStatus(ctx context.Context, orderRef string) (string, error)
	VerifyWebhook(payload WebhookPayload) error
}

type gatewayImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Gateway {
	return &gatewayImpl{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Payment.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

func (g *gatewayImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (session Session, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".CreateSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.ReturnURL == constant.Empty {
		req.ReturnURL = g.config.Payment.ReturnURL
	}

	if req.CancelURL == constant.Empty {
		req.CancelURL = g.config.Payment.CancelURL
	}

	body, err := json.Marshal(req)
	if err != nil {
		return session, fmt.Errorf("failed to marshal session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.Payment.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return session, fmt.Errorf("failed to build session request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderAPIKey, g.config.Payment.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("orderRef", req.OrderRef).Msg("payment gateway unreachable")

		return session, fmt.Errorf("failed to create payment session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return session, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return session, fmt.Errorf("failed to decode session response: %w", err)
	}

	return session, nil
}

func (g *gatewayImpl) GetStatus(ctx context.Context, orderRef string) (status string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".GetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.config.Payment.BaseURL+"/v1/checkout/sessions/"+orderRef, nil)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build status request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAPIKey, g.config.Payment.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("orderRef", orderRef).Msg("payment gateway unreachable")

		return constant.Empty, fmt.Errorf("failed to get payment status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return constant.Empty, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode status response: %w", err)
	}

	return payload.Status, nil
}

// VerifyWebhook recomputes the HMAC over the callback fields. The booking
// service never flips payment state on a payload that fails this check.
func (g *gatewayImpl) VerifyWebhook(payload WebhookPayload) error {
	expected := Sign(g.config.Payment.ChecksumSecret, payload.OrderRef, payload.Status, payload.Amount)

	if !hmac.Equal([]byte(expected), []byte(payload.Signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign computes the webhook signature. Exported so tests and the gateway
// simulator can produce valid callbacks.
func Sign(secret, orderRef, status string, amount int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + status + "|" + strconv.FormatInt(amount, 10)))

	return hex.EncodeToString(mac.Sum(nil))
}
