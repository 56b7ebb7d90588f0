package watermark

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fotogate/pkg/domain-errors"
)

func TestEmbedExtractRoundTrip(t *testing.T) {
	src := testPNG(t, 64, 64)

	for _, id := range []string{
		"abc123ef",
		"7bdba0d1-bc9b-4e2a-b69e-4308a8373d32",
	} {
		t.Run(id, func(t *testing.T) {
			embedded, err := EmbedTransactionID(src, id)
			require.NoError(t, err)
			assert.NotEqual(t, src, embedded)

			extracted, err := ExtractTransactionID(embedded)
			require.NoError(t, err)
			assert.Equal(t, id, extracted)
		})
	}
}

func TestEmbedSurvivesVisibleStampOrderIndependence(t *testing.T) {
	// The bit plane is independent of the visible label: embedding into an
	// already-stamped image still round-trips. (The reverse order would not,
	// since the visible stamp re-encodes lossily.)
	stamped, err := New(DefaultConfig()).Stamp(testJPEG(t, 64, 64), "abcdef12")
	require.NoError(t, err)

	embedded, err := EmbedTransactionID(stamped, "abcdef12")
	require.NoError(t, err)

	extracted, err := ExtractTransactionID(embedded)
	require.NoError(t, err)
	assert.Equal(t, "abcdef12", extracted)
}

func TestExtractWithoutEmbedding(t *testing.T) {
	// Solid mid-gray: every red LSB is 0, so the sentinel cannot appear.
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 128, 128, 128, 255
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	_, err := ExtractTransactionID(buf.Bytes())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestEmbedRejectsTooSmallImage(t *testing.T) {
	// 4x4 = 16 pixels cannot carry 8 characters plus the sentinel.
	_, err := EmbedTransactionID(testPNG(t, 4, 4), "abc123ef")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestEmbedRejectsUndecodableInput(t *testing.T) {
	_, err := EmbedTransactionID([]byte("not an image"), "abc123ef")
	require.Error(t, err)

	_, err = ExtractTransactionID([]byte("not an image"))
	require.Error(t, err)
}
