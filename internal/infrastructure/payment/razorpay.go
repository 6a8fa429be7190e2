package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const _defaultTimeout = 10 * time.Second

// Gateway is a Razorpay-style client: intents are opened with a basic-auth
// JSON call, webhook deliveries are authenticated with an HMAC-SHA256 of the
// raw body under the shared webhook secret.
type Gateway struct {
	endpoint      string
	keyID         string
	keySecret     string
	webhookSecret string

	client *http.Client
}

func New(endpoint, keyID, keySecret, webhookSecret string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = _defaultTimeout
	}

	return &Gateway{
		endpoint:      endpoint,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		client:        &http.Client{Timeout: timeout},
	}
}

type intentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type intentResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (g *Gateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (dto.PaymentIntent, error) {
	body, err := json.Marshal(intentRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return dto.PaymentIntent{}, fmt.Errorf("Gateway - CreateIntent - json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return dto.PaymentIntent{}, fmt.Errorf("Gateway - CreateIntent - http.NewRequestWithContext: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return dto.PaymentIntent{}, fmt.Errorf("Gateway - CreateIntent - g.client.Do: %v: %w", err, errs.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return dto.PaymentIntent{}, fmt.Errorf("Gateway - CreateIntent - status %d: %w", resp.StatusCode, errs.ErrUpstreamUnavailable)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return dto.PaymentIntent{}, fmt.Errorf("Gateway - CreateIntent - io.ReadAll: %w", err)
	}

	var ir intentResponse
	if err := json.Unmarshal(respBody, &ir); err != nil {
		return dto.PaymentIntent{}, fmt.Errorf("Gateway - CreateIntent - json.Unmarshal: %w", err)
	}

	return dto.PaymentIntent{
		Reference: ir.ID,
		Amount:    ir.Amount,
		Currency:  ir.Currency,
		KeyID:     g.keyID,
	}, nil
}

// VerifySignature checks the gateway's authenticity signal: hex HMAC-SHA256
// of the raw delivery body under the webhook secret, compared in constant
// time.
func (g *Gateway) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
