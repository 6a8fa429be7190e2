package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 40, B: 60, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestWatermarkKeepsDimensions(t *testing.T) {
	p := New()

	out, err := p.Watermark(context.Background(), "image/png", testPNG(t, 320, 200), "PixelShop")
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "png", format)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestWatermarkChangesPixels(t *testing.T) {
	p := New()
	src := testPNG(t, 320, 200)

	out, err := p.Watermark(context.Background(), "image/png", src, "PixelShop")
	require.NoError(t, err)

	assert.NotEqual(t, src, out)
}

func TestWatermarkEncodesJPEGByDefault(t *testing.T) {
	p := New()

	out, err := p.Watermark(context.Background(), "application/octet-stream", testPNG(t, 64, 64), "x")
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestWatermarkRejectsGarbage(t *testing.T) {
	p := New()

	_, err := p.Watermark(context.Background(), "image/png", []byte("not an image"), "x")
	assert.Error(t, err)
}
