package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Variant names one derived rendition of an uploaded image.
type Variant struct {
	Name   string
	Width  int
	Height int
}

var (
	VariantThumbnail = Variant{Name: "thumbnail", Width: 150, Height: 150}
	VariantPreview   = Variant{Name: "preview", Width: 800, Height: 800}
)

// Processor decodes, scales and re-encodes uploaded images. Milestone and
// update attachments go through it to produce the stored variants.
type Processor struct {
	quality int
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Resize scales the image down to fit the variant's box, keeping aspect
// ratio, and re-encodes it in its source format.
func (p *Processor) Resize(reader io.Reader, v Variant) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	scaled := scaleToFit(img, v.Width, v.Height)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, scaled); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
	return &buf, format, nil
}

func scaleToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Dimensions returns the pixel size of an encoded image.
func Dimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
