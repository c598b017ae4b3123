package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

type WebPOptions struct {
	MaxW     int     // resize bound, aspect kept
	MaxH     int     //
	TargetKB int     // 0 = single pass at Quality
	Quality  float32 //
	MinQ     float32 // binary-search floor when TargetKB > 0
	MaxQ     float32 //
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:     envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:     envInt("IMAGE_WEBP_MAX_H", 1600),
		TargetKB: envInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:  envFloat("IMAGE_WEBP_QUALITY", 80),
		MinQ:     envFloat("IMAGE_WEBP_MIN_Q", 45),
		MaxQ:     envFloat("IMAGE_WEBP_MAX_Q", 85),
	}
}

// WebPEnabled reports whether uploaded images are re-encoded (IMAGE_WEBP_ENABLED, default true).
func WebPEnabled() bool {
	v := strings.TrimSpace(os.Getenv("IMAGE_WEBP_ENABLED"))
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err != nil || b
}

// decodeImage understands jpeg/png/gif through the stdlib registry and webp
// through chai2010/webp. EXIF orientation is applied.
func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable image", ErrUnsupported)
	}
	return img, nil
}

// ConvertToWebP decodes, shrinks to the bounds and encodes as WebP.
func ConvertToWebP(data []byte, opts WebPOptions) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if (opts.MaxW > 0 && b.Dx() > opts.MaxW) || (opts.MaxH > 0 && b.Dy() > opts.MaxH) {
		img = imaging.Fit(img, nonZero(opts.MaxW, b.Dx()), nonZero(opts.MaxH, b.Dy()), imaging.CatmullRom)
	}
	return encodeWebP(img, opts)
}

func nonZero(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func encodeWebP(img image.Image, opts WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opts.TargetKB <= 0 {
		q := opts.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(q)
	}

	target := opts.TargetKB * 1024
	low, high := opts.MinQ, opts.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 {
		high = 85
	}
	var best []byte
	for i := 0; i < 7; i++ {
		q := (low + high) / 2
		data, err := encodeQ(q)
		if err != nil {
			return nil, err
		}
		if len(data) <= target {
			best = data
			low = q
		} else {
			high = q
		}
	}
	if best == nil {
		return encodeQ(low)
	}
	return best, nil
}
