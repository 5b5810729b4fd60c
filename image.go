package docconv

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is the JPEG quality used when re-encoding images (0.9).
const DefaultJPEGQuality = 90

var errEmptyImage = errors.New("image has no pixels")

// decodeImage is the single decode step of an image conversion. It returns
// the decoded image and the registered format name ("png", "jpeg", ...).
func decodeImage(mediaType string, data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{SourceType: mediaType, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, "", &DecodeError{SourceType: mediaType, Err: errEmptyImage}
	}
	return img, format, nil
}

// canvas redraws img onto a fresh RGBA raster with its origin at (0, 0).
func canvas(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return dst
}

// encodeImage writes img in the requested raster format.
func encodeImage(img image.Image, target Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch target {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		err = errors.New("not a raster format")
	}
	if err != nil {
		return nil, &EncodeError{Target: target, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodeError{Target: target, Err: errEmptyOutput}
	}
	return buf.Bytes(), nil
}
