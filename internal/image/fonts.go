package imagepkg

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *opentype.Font
	defaultFontErr  error
)

// LoadFont parses the OpenType/TrueType font at path. An empty path returns
// the embedded Go Regular font. Parsed fonts are safe to share between renders.
func LoadFont(path string) (*opentype.Font, error) {
	if path == "" {
		defaultFontOnce.Do(func() {
			defaultFont, defaultFontErr = opentype.Parse(goregular.TTF)
		})
		return defaultFont, defaultFontErr
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	f, err := opentype.Parse(b)
	if err != nil {
		return nil, &AssetError{Path: path, Err: fmt.Errorf("parse font: %w", err)}
	}
	return f, nil
}

// newFace builds a face for one render. Faces hold glyph buffers and must not
// be shared between goroutines; close it when the render is done.
func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
