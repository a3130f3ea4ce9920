package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

/* =======================================================================
   WebP conversion
======================================================================= */

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
	// ThumbW/ThumbH > 0 also produce a center-cropped thumbnail.
	ThumbW int
	ThumbH int
}

func DefaultWebPOptions(maxWidth, quality int) WebPOptions {
	if maxWidth <= 0 {
		maxWidth = 1600
	}
	if quality <= 0 || quality > 100 {
		quality = 82
	}
	return WebPOptions{MaxW: maxWidth, MaxH: maxWidth, Quality: float32(quality)}
}

type Converted struct {
	Image     []byte
	Thumbnail []byte
	Width     int
	Height    int
}

// decodeImage sniffs jpeg/png/webp, falling back to the extension.
func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("unsupported image format: %s", ct)
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	if (maxW > 0 && b.Dx() > maxW) || (maxH > 0 && b.Dy() > maxH) {
		return imaging.Fit(src, maxW, maxH, imaging.CatmullRom)
	}
	return src
}

func encodeToWebP(img image.Image, quality float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertToWebP decodes, downscales and re-encodes an uploaded image.
func ConvertToWebP(all []byte, filename string, opt WebPOptions) (*Converted, error) {
	src, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img := downscaleIfNeeded(src, opt.MaxW, opt.MaxH)

	out, err := encodeToWebP(img, opt.Quality)
	if err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	res := &Converted{Image: out, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}

	if opt.ThumbW > 0 && opt.ThumbH > 0 {
		thumb := imaging.Thumbnail(src, opt.ThumbW, opt.ThumbH, imaging.Lanczos)
		if res.Thumbnail, err = encodeToWebP(thumb, opt.Quality); err != nil {
			return nil, fmt.Errorf("encode thumbnail: %w", err)
		}
	}
	return res, nil
}
