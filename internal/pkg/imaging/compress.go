package imaging

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// Processor re-encodes uploaded images as bounded JPEGs. Callers are expected
// to fall back to the original bytes when Process returns an error: a failed
// compression must never abort a submission.
type Processor struct {
	maxDimension int
	quality      int
}

func NewProcessor(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = 1920
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{maxDimension: maxDimension, quality: quality}
}

// Process decodes data, scales it down to fit within maxDimension while
// keeping the aspect ratio, and re-encodes it as JPEG. Images already within
// bounds are re-encoded only.
func (p *Processor) Process(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	img = p.bound(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Thumbnail produces a square center-cropped JPEG of the given size.
func (p *Processor) Thumbnail(data []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Processor) bound(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= p.maxDimension && b.Dy() <= p.maxDimension {
		return img
	}
	return imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
}
