package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/pkg/logger"
	"github.com/pixelshop/backend/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	order  *entity.Order
	intent dto.PaymentIntent
	result dto.CallbackResult
	asset  []byte
	orders []dto.OrderSummary
	err    error

	confirmed []dto.CallbackEvent
}

func (f *fakeOrders) Checkout(context.Context, uuid.UUID, uuid.UUID, entity.VariantKey) (*entity.Order, dto.PaymentIntent, error) {
	if f.err != nil {
		return nil, dto.PaymentIntent{}, f.err
	}
	return f.order, f.intent, nil
}

func (f *fakeOrders) Confirm(_ context.Context, event dto.CallbackEvent) (dto.CallbackResult, error) {
	f.confirmed = append(f.confirmed, event)
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func (f *fakeOrders) ListByBuyer(context.Context, uuid.UUID) ([]dto.OrderSummary, error) {
	return f.orders, f.err
}

func (f *fakeOrders) DownloadAsset(context.Context, uuid.UUID, uuid.UUID) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.asset, "image/jpeg", nil
}

func (f *fakeOrders) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOrders) MarkAsProcessingBatch(context.Context, []*entity.OutboxEvent) error    { return nil }
func (f *fakeOrders) MarkAsProcessedBatch(context.Context, []*entity.OutboxEvent) error     { return nil }
func (f *fakeOrders) IncrementRetryCountBatch(context.Context, []*entity.OutboxEvent) error { return nil }
func (f *fakeOrders) MarkMaxRetriesAsFailed(context.Context, int) error                     { return nil }
func (f *fakeOrders) CleanupOutbox(context.Context) error                                   { return nil }

type fakeCatalog struct {
	product *entity.Product
	offers  []entity.VariantDescriptor
	preview []byte
	err     error
}

func (f *fakeCatalog) Resolve(context.Context, uuid.UUID, entity.VariantKey) (entity.VariantDescriptor, error) {
	return entity.VariantDescriptor{}, f.err
}

func (f *fakeCatalog) Product(context.Context, uuid.UUID) (*entity.Product, []entity.VariantDescriptor, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.product, f.offers, nil
}

func (f *fakeCatalog) Preview(context.Context, uuid.UUID) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.preview, "image/jpeg", nil
}

func newTestApp(orders *fakeOrders, catalog *fakeCatalog) *fiber.App {
	app := fiber.New()
	NewOrderRoutes(app.Group("/v1"), orders, catalog, logger.New("error"))
	return app
}

func testOrder() *entity.Order {
	now := time.Now()
	return &entity.Order{
		ID:               uuid.New(),
		BuyerID:          uuid.New(),
		ProductID:        uuid.New(),
		Variant:          entity.VariantDescriptor{Tier: entity.TierMedium, License: entity.LicensePersonal, Width: 1200, Height: 800, Price: 499},
		PaymentReference: "pay_1",
		Status:           entity.OrderPending,
		Amount:           499,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Error
}

func TestCreateOrder(t *testing.T) {
	order := testOrder()
	orders := &fakeOrders{
		order:  order,
		intent: dto.PaymentIntent{Reference: "pay_1", Amount: 499, Currency: "INR", KeyID: "rzp_test_key"},
	}
	app := newTestApp(orders, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodPost, "/v1/orders", map[string]string{
		"product_id": order.ProductID.String(),
		"tier":       "medium",
		"license":    "personal",
	}, map[string]string{_buyerIDHeader: order.BuyerID.String()})

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		OrderID          string `json:"order_id"`
		Status           string `json:"status"`
		Amount           int64  `json:"amount"`
		PaymentReference string `json:"payment_reference"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, order.ID.String(), body.OrderID)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, int64(499), body.Amount)
	assert.Equal(t, "pay_1", body.PaymentReference)
}

func TestCreateOrderMissingIdentity(t *testing.T) {
	app := newTestApp(&fakeOrders{}, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodPost, "/v1/orders", map[string]string{
		"product_id": uuid.NewString(),
		"tier":       "medium",
		"license":    "personal",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateOrderInvalidVariant(t *testing.T) {
	app := newTestApp(&fakeOrders{}, &fakeCatalog{})
	headers := map[string]string{_buyerIDHeader: uuid.NewString()}

	resp := doJSON(t, app, http.MethodPost, "/v1/orders", map[string]string{
		"product_id": uuid.NewString(),
		"tier":       "gigantic",
		"license":    "personal",
	}, headers)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/v1/orders", map[string]string{
		"product_id": uuid.NewString(),
		"tier":       "medium",
		"license":    "editorial",
	}, headers)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/v1/orders", map[string]string{
		"product_id": "not-a-uuid",
		"tier":       "medium",
		"license":    "personal",
	}, headers)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrderErrorMapping(t *testing.T) {
	headers := map[string]string{_buyerIDHeader: uuid.NewString()}
	body := map[string]string{
		"product_id": uuid.NewString(),
		"tier":       "medium",
		"license":    "commercial",
	}

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown product", fmt.Errorf("uc: %w", errs.ErrRecordNotFound), http.StatusNotFound},
		{"license not offered", fmt.Errorf("uc: %w", errs.ErrVariantUnavailable), http.StatusUnprocessableEntity},
		{"gateway down", fmt.Errorf("uc: %w", errs.ErrUpstreamUnavailable), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeOrders{err: tc.err}, &fakeCatalog{})

			resp := doJSON(t, app, http.MethodPost, "/v1/orders", body, headers)
			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}
}

func TestDownloadAsset(t *testing.T) {
	orders := &fakeOrders{asset: []byte("full-bytes")}
	app := newTestApp(orders, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodGet, "/v1/orders/"+uuid.NewString()+"/asset", nil,
		map[string]string{_buyerIDHeader: uuid.NewString()})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("full-bytes"), data)
}

func TestDownloadAssetRefusalsLookAlike(t *testing.T) {
	// not-mine and not-paid must be byte-identical answers
	app := newTestApp(&fakeOrders{err: fmt.Errorf("uc: %w", errs.ErrForbidden)}, &fakeCatalog{})
	headers := map[string]string{_buyerIDHeader: uuid.NewString()}

	first := doJSON(t, app, http.MethodGet, "/v1/orders/"+uuid.NewString()+"/asset", nil, headers)
	require.Equal(t, http.StatusForbidden, first.StatusCode)
	assert.Equal(t, "not available", decodeError(t, first))

	second := doJSON(t, app, http.MethodGet, "/v1/orders/"+uuid.NewString()+"/asset", nil, headers)
	require.Equal(t, http.StatusForbidden, second.StatusCode)
	assert.Equal(t, "not available", decodeError(t, second))
}

func TestDownloadAssetUnknownOrder(t *testing.T) {
	app := newTestApp(&fakeOrders{err: fmt.Errorf("uc: %w", errs.ErrRecordNotFound)}, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodGet, "/v1/orders/"+uuid.NewString()+"/asset", nil,
		map[string]string{_buyerIDHeader: uuid.NewString()})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListMyOrders(t *testing.T) {
	order := testOrder()
	orders := &fakeOrders{orders: []dto.OrderSummary{{Order: order, PreviewURL: "https://cdn.test/p"}}}
	app := newTestApp(orders, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodGet, "/v1/orders/mine", nil,
		map[string]string{_buyerIDHeader: order.BuyerID.String()})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Orders []struct {
			OrderID    string `json:"order_id"`
			PreviewURL string `json:"preview_url"`
			Status     string `json:"status"`
		} `json:"orders"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Orders, 1)
	assert.Equal(t, order.ID.String(), body.Orders[0].OrderID)
	assert.Equal(t, "https://cdn.test/p", body.Orders[0].PreviewURL)
	assert.Equal(t, "pending", body.Orders[0].Status)
}

func TestPaymentCallbackAccepted(t *testing.T) {
	orders := &fakeOrders{result: dto.CallbackAccepted}
	app := newTestApp(orders, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodPost, "/v1/payments/callback",
		map[string]string{"payment_reference": "pay_1", "outcome": "succeeded"},
		map[string]string{_signatureHeader: "deadbeef"})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "accepted", body.Result)

	require.Len(t, orders.confirmed, 1)
	assert.Equal(t, "deadbeef", orders.confirmed[0].Signature)
	assert.Contains(t, string(orders.confirmed[0].Body), "pay_1")
}

func TestPaymentCallbackRejectionsStillAck(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"forged signature", fmt.Errorf("uc: %w", errs.ErrInvalidSignature)},
		{"unknown reference", fmt.Errorf("uc: %w", errs.ErrRecordNotFound)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeOrders{err: tc.err}, &fakeCatalog{})

			resp := doJSON(t, app, http.MethodPost, "/v1/payments/callback",
				map[string]string{"payment_reference": "pay_x", "outcome": "succeeded"},
				map[string]string{_signatureHeader: "deadbeef"})

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Result string `json:"result"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "rejected", body.Result)
		})
	}
}

func TestPaymentCallbackStorageErrorAsksForRedelivery(t *testing.T) {
	app := newTestApp(&fakeOrders{err: fmt.Errorf("uc: storage down")}, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodPost, "/v1/payments/callback",
		map[string]string{"payment_reference": "pay_x", "outcome": "succeeded"},
		map[string]string{_signatureHeader: "deadbeef"})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestPaymentCallbackMissingSignature(t *testing.T) {
	orders := &fakeOrders{}
	app := newTestApp(orders, &fakeCatalog{})

	resp := doJSON(t, app, http.MethodPost, "/v1/payments/callback",
		map[string]string{"payment_reference": "pay_x", "outcome": "succeeded"}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, orders.confirmed)
}

func TestGetProduct(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Title: "Dunes", Licenses: []entity.LicenseType{entity.LicensePersonal}}
	catalog := &fakeCatalog{
		product: product,
		offers: []entity.VariantDescriptor{
			{Tier: entity.TierSmall, License: entity.LicensePersonal, Width: 640, Height: 427, Price: 199, Terms: "Personal, non-commercial use only"},
		},
	}
	app := newTestApp(&fakeOrders{}, catalog)

	resp := doJSON(t, app, http.MethodGet, "/v1/products/"+product.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		ProductID string `json:"product_id"`
		Title     string `json:"title"`
		Variants  []struct {
			Tier  string `json:"tier"`
			Price int64  `json:"price"`
		} `json:"variants"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, product.ID.String(), body.ProductID)
	assert.Equal(t, "Dunes", body.Title)
	require.Len(t, body.Variants, 1)
	assert.Equal(t, "small", body.Variants[0].Tier)
	assert.Equal(t, int64(199), body.Variants[0].Price)
}

func TestGetProductPreview(t *testing.T) {
	catalog := &fakeCatalog{preview: []byte("stamped-bytes")}
	app := newTestApp(&fakeOrders{}, catalog)

	resp := doJSON(t, app, http.MethodGet, "/v1/products/"+uuid.NewString()+"/preview", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("stamped-bytes"), data)
}

func TestGetProductUnknown(t *testing.T) {
	app := newTestApp(&fakeOrders{}, &fakeCatalog{err: fmt.Errorf("uc: %w", errs.ErrRecordNotFound)})

	resp := doJSON(t, app, http.MethodGet, "/v1/products/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
