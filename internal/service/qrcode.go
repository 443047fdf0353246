package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes the order-details link so a courier or pickup
// counter can scan straight to the receipt.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/api/orders/%d/details", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
