package imagepkg

import (
	"errors"
	"image"
	"os"

	// registered for imaging.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// LoadCanvas opens the background at path and stretches it to w x h.
func LoadCanvas(path string, w, h int) (*image.NRGBA, error) {
	img, err := openImage(path)
	if err != nil {
		return nil, err
	}
	return NewCanvas(img, w, h)
}

// NewCanvas stretches an already decoded background to w x h. Aspect ratio is not kept.
func NewCanvas(img image.Image, w, h int) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &AssetError{Path: "<image>", Err: errors.New("empty image")}
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return img, nil
}
