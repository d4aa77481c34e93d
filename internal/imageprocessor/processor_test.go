package imageprocessor

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestResizeScalesDownToFit(t *testing.T) {
	p := NewProcessor(85)

	out, format, err := p.Resize(encodePNG(t, 600, 300), VariantThumbnail)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	w, h, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 150, w)
	assert.Equal(t, 75, h, "aspect ratio is preserved")
}

func TestResizeKeepsSmallImages(t *testing.T) {
	p := NewProcessor(85)

	out, _, err := p.Resize(encodePNG(t, 100, 80), VariantThumbnail)
	require.NoError(t, err)

	w, h, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 80, h)
}

func TestResizeRejectsNonImages(t *testing.T) {
	p := NewProcessor(85)

	_, _, err := p.Resize(strings.NewReader("not an image"), VariantThumbnail)
	assert.Error(t, err)
}

func TestNewProcessorQualityBounds(t *testing.T) {
	assert.Equal(t, 85, NewProcessor(0).quality)
	assert.Equal(t, 85, NewProcessor(150).quality)
	assert.Equal(t, 70, NewProcessor(70).quality)
}
