package imagepkg

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns a QR code as an image, usable as a badge logo.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(b))
}
