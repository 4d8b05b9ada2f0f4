package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Tint multiplies every pixel by c and darkens the result by brightness.
// Alpha is dropped: the output is fully opaque.
func Tint(img image.Image, c color.Color, brightness float64) *image.NRGBA {
	t := color.NRGBAModel.Convert(c).(color.NRGBA)
	return imaging.AdjustFunc(img, func(px color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: tintChannel(px.R, t.R, brightness),
			G: tintChannel(px.G, t.G, brightness),
			B: tintChannel(px.B, t.B, brightness),
			A: 0xff,
		}
	})
}

func tintChannel(a, b uint8, brightness float64) uint8 {
	m := uint32(a) * uint32(b) / 255
	v := float64(m)*brightness + 0.5
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
