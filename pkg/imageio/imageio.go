// Package imageio loads and encodes the raster images the editor deals in:
// uploaded sources, generated backgrounds, element images and exported
// frames. Sources may be file paths, http(s) URLs or data URLs; WebP is
// supported on both ends.
package imageio

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Format is an output encoding for rasterized images.
type Format string

const (
	JPEG Format = "jpg"
	PNG  Format = "png"
	WebP Format = "webp"
)

// MIME returns the media type for the format.
func (f Format) MIME() string {
	switch f {
	case PNG:
		return "image/png"
	case WebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg", "":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return "", fmt.Errorf("unsupported image format: %s", s)
}

// Loader fetches and decodes an image from a source reference. The canvas
// engine and the crop utility depend on this interface so tests can stub
// image fetching entirely.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// HTTPLoader loads images from http(s) URLs, data URLs and local file paths.
type HTTPLoader struct {
	Client *http.Client
}

// NewLoader returns a loader with a sane request timeout.
func NewLoader() *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: 30 * time.Second}}
}

// Load fetches and decodes the image at src.
func (l *HTTPLoader) Load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURL(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.loadURL(ctx, src)
	default:
		return loadFile(src)
	}
}

func (l *HTTPLoader) loadURL(ctx context.Context, imageURL string) (image.Image, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ThumbStudio/1.0")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return DecodeBytes(data)
}

func loadFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	// imaging registers the x/image webp decoder through the blank import
	// above, so a failure here is a genuine decode failure.
	return nil, fmt.Errorf("failed to open image %s: %w", path, err)
}

func decodeDataURL(src string) (image.Image, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	meta, payload := src[len("data:"):comma], src[comma+1:]
	var data []byte
	var err error
	if strings.HasSuffix(meta, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var s string
		s, err = url.QueryUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes raw encoded image data, falling back to an explicit
// WebP decode for streams the standard registry rejects.
func DecodeBytes(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// Encode writes img to w in the requested format. Quality applies to JPEG
// and WebP (1-100).
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	if quality < 1 || quality > 100 {
		quality = 90
	}
	switch format {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case WebP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	return fmt.Errorf("unsupported image format: %s", format)
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBase64 prepares an image for a vision model request: optionally
// bounded to maxDim on the long side, encoded and base64'd.
func EncodeBase64(img image.Image, format Format, maxDim, quality int) (string, error) {
	if maxDim > 0 {
		b := img.Bounds()
		if w, h := b.Dx(), b.Dy(); w > maxDim || h > maxDim {
			if w >= h {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
			}
		}
	}
	data, err := EncodeBytes(img, format, quality)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Save writes img to a file, choosing the codec from the extension.
func Save(img image.Image, path string, quality int) error {
	format, err := ParseFormat(strings.TrimPrefix(strings.ToLower(extOf(path)), "."))
	if err != nil {
		return err
	}
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, img, format, quality)
}
