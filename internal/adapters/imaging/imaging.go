// Package imaging normalises uploaded climb photos. Anything the camera or
// gallery produces (JPEG, PNG, GIF, WebP) comes out as a bounded-size JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadBytes is the hard cap on what a client may submit.
	MaxUploadBytes = 20 << 20
	// TargetBytes is the compressed size the pipeline aims for.
	TargetBytes = 1 << 20
	// MaxDimension bounds the longer edge after downscaling.
	MaxDimension = 1920

	startQuality = 80
	minQuality   = 40
	qualityStep  = 10
)

// ErrNotAnImage is returned when the payload does not decode as a supported format.
var ErrNotAnImage = errors.New("unsupported image format")

// ErrTooLarge is returned when the payload exceeds MaxUploadBytes.
var ErrTooLarge = errors.New("image exceeds upload size limit")

// Normalise decodes, downscales and re-encodes a photo as JPEG.
// PRE: data is the raw upload, already read into memory
// POST: Returns a JPEG no larger than the lowest-quality encoding of the
//
//	downscaled image; dimensions bounded by MaxDimension
func Normalise(data []byte) ([]byte, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	scaled := downscale(src)

	var buf bytes.Buffer
	quality := startQuality
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode photo: %w", err)
		}
		if buf.Len() <= TargetBytes || quality <= minQuality {
			break
		}
		quality -= qualityStep
	}

	slog.Debug("photo_normalised",
		"format", format,
		"in_bytes", len(data),
		"out_bytes", buf.Len(),
		"quality", quality,
	)
	return buf.Bytes(), nil
}

// downscale shrinks the image so its longer edge is at most MaxDimension,
// preserving aspect ratio. Images already within bounds pass through.
func downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= MaxDimension {
		return src
	}

	scale := float64(MaxDimension) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
