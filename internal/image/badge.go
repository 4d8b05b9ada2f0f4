package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Badge records where the trademark and logo landed. Absent parts are empty rectangles.
type Badge struct {
	Trademark image.Rectangle `json:"trademark"`
	Logo      image.Rectangle `json:"logo"`
}

// Top is the highest row the badge occupies, or -1 when nothing was placed.
func (b Badge) Top() int {
	switch {
	case b.Logo.Empty() && b.Trademark.Empty():
		return -1
	case b.Logo.Empty():
		return b.Trademark.Min.Y
	default:
		return b.Logo.Min.Y
	}
}

// ResizeLogo scales logo to frac of the canvas width keeping its aspect
// ratio (height = logoHeight * targetWidth / logoWidth). A logo that would
// then be taller than frac of the canvas height is instead fit to that
// height: tall logos stay inside a frac x frac box rather than following the
// width-only formula. The result is a fresh NRGBA copy, opaque where the
// source had no alpha.
func ResizeLogo(logo image.Image, canvasW, canvasH int, frac float64) *image.NRGBA {
	maxW := int(float64(canvasW) * frac)
	maxH := int(float64(canvasH) * frac)
	l := imaging.Resize(logo, maxW, 0, imaging.Lanczos)
	if l.Bounds().Dy() > maxH {
		l = imaging.Resize(logo, 0, maxH, imaging.Lanczos)
	}
	return l
}

// PlaceBadge draws the trademark line and the logo at the bottom of dst.
// The trademark box bottom sits o.BottomMargin above the canvas edge and the
// logo sits o.LogoSpacing above the trademark box. Without a trademark the
// logo anchors to the bottom margin. Either part may be omitted with an empty
// string or nil logo. textBottom is the lowest row of the quote block; a badge
// reaching above it is reported as a warning.
func PlaceBadge(dst *image.NRGBA, logo image.Image, trademark string, face font.Face, col color.Color, o Options, textBottom int) (Badge, []error) {
	var badge Badge
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	if trademark != "" && face != nil {
		tw, th := MeasureText(face, trademark)
		x := (w - tw) / 2
		y := h - th - o.BottomMargin
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
		}
		d.DrawString(trademark)
		badge.Trademark = image.Rect(x, y, x+tw, y+th)
	}

	if logo != nil {
		l := ResizeLogo(logo, w, h, o.LogoFraction)
		lw, lh := l.Bounds().Dx(), l.Bounds().Dy()
		y := h - o.BottomMargin - lh
		if !badge.Trademark.Empty() {
			y = badge.Trademark.Min.Y - o.LogoSpacing - lh
		}
		x := (w - lw) / 2
		badge.Logo = image.Rect(x, y, x+lw, y+lh)
		draw.Draw(dst, badge.Logo, l, l.Bounds().Min, draw.Over)
	}

	var warnings []error
	if top := badge.Top(); top >= 0 && top < textBottom {
		warnings = append(warnings, LayoutWarning{
			Kind:   BadgeOverlap,
			Detail: fmt.Sprintf("badge top %d is above quote bottom %d", top, textBottom),
		})
	}
	return badge, warnings
}
