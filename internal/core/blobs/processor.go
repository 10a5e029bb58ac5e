package blobs

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// maxPixels bounds decoded image area so a small file cannot expand into gigabytes
const maxPixels = 50_000_000

// normalizedImage is the re-encoded upload
type normalizedImage struct {
	Data   []byte
	Width  int
	Height int
}

// normalizeImage decodes jpeg/png/webp data, applies EXIF orientation, downscales
// anything larger than maxDimension on either side and re-encodes as JPEG.
// Images already inside the bounds are not upscaled.
func normalizeImage(data []byte, maxDimension, quality int) (*normalizedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}

	if format != "jpeg" && format != "png" && format != "webp" {
		return nil, fmt.Errorf("%w: format %s", ErrUnsupportedMimeType, format)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("%w: dimensions %dx%d out of range", ErrUndecodableImage, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}

	if maxDimension > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
			img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	bounds := img.Bounds()
	return &normalizedImage{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
