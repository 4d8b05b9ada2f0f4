package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/youruser/quotecard/internal/util"
)

// DownloadImage fetches url and decodes it. Any failure is an AssetError.
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, url, nil)
	if err != nil {
		return nil, &AssetError{Path: url, Err: err}
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, &AssetError{Path: url, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}
