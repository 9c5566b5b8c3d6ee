package service

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// DefaultQRGenerator encodes a tracking link for the given order.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/orders/%s", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

// OrderQRCode returns the pickup QR PNG for an order, generating it on first
// request and caching the bytes in the durable medium.
func (s *Service) OrderQRCode(ctx context.Context, orderID string, gen QRGenerator) ([]byte, error) {
	orders := s.store.LoadOrders(ctx)
	found := false
	for _, order := range orders {
		if order.ID == orderID {
			found = true
			break
		}
	}
	if !found {
		return nil, notFound("order", orderID)
	}

	key := "qr:" + orderID
	var png []byte
	if s.store.Load(ctx, key, &png) && len(png) > 0 {
		return png, nil
	}

	png, err := gen.Generate(orderID)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	s.store.Save(ctx, key, png)
	return png, nil
}
