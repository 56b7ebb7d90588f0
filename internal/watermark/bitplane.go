package watermark

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	dErrors "fotogate/pkg/domain-errors"
)

// sentinel marks the end of the embedded payload: fifteen 1-bits then a 0
// (0xFFFE), written after the id's character bits.
var sentinel = []byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0}

// ErrNoEmbeddedID is returned by ExtractTransactionID when the sentinel never
// appears or the payload length is not a whole number of characters.
var ErrNoEmbeddedID = dErrors.New(dErrors.CodeNotFound, "no embedded transaction id found")

// EmbedTransactionID hides the full transaction id in the image by
// overwriting the least-significant bit of each pixel's red channel, row by
// row, with the id's character bits (8 per character, most significant first)
// followed by the sentinel.
//
// The result is re-encoded as PNG: the embedding lives in the lowest bit
// plane, which a lossy encoder would destroy. This is invisible to the eye
// and independent of the visible stamp.
func EmbedTransactionID(img []byte, transactionID string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "watermark embed: decode image")
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	bits := idBits(transactionID)
	if len(bits) > bounds.Dx()*bounds.Dy() {
		return nil, dErrors.New(dErrors.CodeInternal, "watermark embed: image too small to carry the transaction id")
	}

	// Red channel is byte 0 of every 4-byte RGBA pixel.
	for i, bit := range bits {
		rgba.Pix[i*4] = rgba.Pix[i*4]&0xFE | bit
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "watermark embed: encode image")
	}
	return buf.Bytes(), nil
}

// ExtractTransactionID recovers an id embedded by EmbedTransactionID,
// returning ErrNoEmbeddedID when the image carries none.
func ExtractTransactionID(img []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "watermark extract: decode image")
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	bits := make([]byte, bounds.Dx()*bounds.Dy())
	for i := range bits {
		bits[i] = rgba.Pix[i*4] & 1
	}

	end := bytes.Index(bits, sentinel)
	if end == -1 || end%8 != 0 {
		return "", ErrNoEmbeddedID
	}

	id := make([]byte, 0, end/8)
	for i := 0; i < end; i += 8 {
		var b byte
		for _, bit := range bits[i : i+8] {
			b = b<<1 | bit
		}
		id = append(id, b)
	}
	return string(id), nil
}

// idBits expands the id into single-bit bytes followed by the sentinel.
func idBits(transactionID string) []byte {
	bits := make([]byte, 0, len(transactionID)*8+len(sentinel))
	for _, c := range []byte(transactionID) {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, c>>shift&1)
		}
	}
	return append(bits, sentinel...)
}
