package infrastructure

import (
	"context"

	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	// PaymentGateway is the external payment provider at its interface
	// boundary: intent creation plus webhook authenticity verification.
	PaymentGateway interface {
		CreateIntent(ctx context.Context, amount int64, currency, receipt string) (dto.PaymentIntent, error)
		VerifySignature(body []byte, signature string) bool
	}

	// AssetFetcher talks to the external image transformation service.
	AssetFetcher interface {
		Fetch(ctx context.Context, assetKey string, t dto.Transform) ([]byte, error)
		PreviewURL(assetKey string, t dto.Transform) string
	}

	Watermarker interface {
		Watermark(ctx context.Context, contentType string, data []byte, text string) ([]byte, error)
	}
)
