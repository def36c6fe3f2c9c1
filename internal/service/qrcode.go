package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(reservationID int) ([]byte, error)
}

// DefaultQRGenerator encodes a front-desk check-in link for a reservation.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(reservationID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/checkin.html?reservation_id=%d", g.BaseURL, reservationID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
