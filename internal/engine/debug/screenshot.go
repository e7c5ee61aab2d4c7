package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Screenshots writes framebuffer captures. Format is "png" (default) or "bmp".
type Screenshots struct {
	Dir    string
	Prefix string
	Format string
}

func (s Screenshots) ext() string {
	if strings.EqualFold(s.Format, "bmp") {
		return "bmp"
	}
	return "png"
}

// Filename returns the path a capture taken at t is written to.
func (s Screenshots) Filename(t time.Time) string {
	name := fmt.Sprintf("%s_%s.%s", s.Prefix, t.Format("2006-01-02_15-04-05.000"), s.ext())
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// FromFramebuffer converts bottom-up RGBA rows read back from GL into a
// top-down image.
func FromFramebuffer(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Save writes a framebuffer capture taken at t and returns its path.
func (s Screenshots) Save(pixels []byte, width, height int, t time.Time) (string, error) {
	img, err := FromFramebuffer(pixels, width, height)
	if err != nil {
		return "", err
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	path := s.Filename(t)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	defer f.Close()

	if s.ext() == "bmp" {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, nil
}
