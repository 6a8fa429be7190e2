package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pixelshop/backend/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var req struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(499), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc123",
			"amount":   req.Amount,
			"currency": req.Currency,
			"status":   "created",
		})
	}))
	defer srv.Close()

	g := New(srv.URL, "rzp_test_key", "secret", "whsec", time.Second)

	intent, err := g.CreateIntent(context.Background(), 499, "INR", "receipt-1")
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", intent.Reference)
	assert.Equal(t, int64(499), intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
	assert.Equal(t, "rzp_test_key", intent.KeyID)
}

func TestCreateIntentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := New(srv.URL, "rzp_test_key", "secret", "whsec", time.Second)

	_, err := g.CreateIntent(context.Background(), 199, "INR", "receipt-2")
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
}

func TestCreateIntentUnreachable(t *testing.T) {
	g := New("http://127.0.0.1:1", "rzp_test_key", "secret", "whsec", 200*time.Millisecond)

	_, err := g.CreateIntent(context.Background(), 199, "INR", "receipt-3")
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
}

func TestVerifySignature(t *testing.T) {
	g := New("http://unused", "key", "secret", "whsec", time.Second)
	body := []byte(`{"payment_reference":"pay_1","outcome":"succeeded"}`)

	assert.True(t, g.VerifySignature(body, sign("whsec", body)))
}

func TestVerifySignatureRejectsForgeries(t *testing.T) {
	g := New("http://unused", "key", "secret", "whsec", time.Second)
	body := []byte(`{"payment_reference":"pay_1","outcome":"succeeded"}`)

	assert.False(t, g.VerifySignature(body, sign("wrong-secret", body)))
	assert.False(t, g.VerifySignature(body, "deadbeef"))
	assert.False(t, g.VerifySignature(body, ""))

	// the signature binds the exact body bytes
	tampered := []byte(`{"payment_reference":"pay_1","outcome":"failed"}`)
	assert.False(t, g.VerifySignature(tampered, sign("whsec", body)))
}
