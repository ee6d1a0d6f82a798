package ticketcode

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// QRPNG renders a ticket code as a PNG image suitable for scanning at the
// venue and embedding in confirmation mail.
func QRPNG(code string, size int) ([]byte, error) {
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
