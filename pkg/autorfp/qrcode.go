package autorfp

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	qrsvg "github.com/wamuir/svg-qr-code"
)

const DefaultQRCodeSize = 256

// QRCodePNG encodes content as a square PNG of size pixels.
func QRCodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRCodeSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

func QRCodeSVG(content string) (string, error) {
	qr, err := qrsvg.New(content)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code svg: %w", err)
	}
	return qr.String(), nil
}
