package imagepkg

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var red = color.NRGBA{R: 255, A: 255}

func TestResizeLogo(t *testing.T) {
	testCases := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"wide", 400, 200, 216, 108},
		{"square", 50, 50, 216, 216},
		{"tall", 100, 400, 54, 216},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := ResizeLogo(solid(tc.w, tc.h, red), 1080, 1080, 0.2)
			if got := l.Bounds().Size(); got != image.Pt(tc.wantW, tc.wantH) {
				t.Errorf("size = %v, want %dx%d", got, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestPlaceBadgeStacksLogoAboveTrademark(t *testing.T) {
	o := DefaultOptions()
	canvas := solid(1080, 1080, color.NRGBA{A: 255})
	face := testFace(t, o.TrademarkFont.Size)

	badge, warnings := PlaceBadge(canvas, solid(400, 200, red), o.TrademarkText, face, color.White, o, 600)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if badge.Trademark.Max.Y != 1080-o.BottomMargin {
		t.Errorf("trademark bottom = %d, want %d", badge.Trademark.Max.Y, 1080-o.BottomMargin)
	}
	if gap := badge.Trademark.Min.Y - badge.Logo.Max.Y; gap < o.LogoSpacing {
		t.Errorf("logo/trademark gap = %d, want >= %d", gap, o.LogoSpacing)
	}
	if badge.Logo.Min.X != 432 || badge.Logo.Max.X != 648 {
		t.Errorf("logo x range = [%d,%d), want [432,648)", badge.Logo.Min.X, badge.Logo.Max.X)
	}
	mid := image.Pt((badge.Logo.Min.X+badge.Logo.Max.X)/2, (badge.Logo.Min.Y+badge.Logo.Max.Y)/2)
	if got := canvas.NRGBAAt(mid.X, mid.Y); got != red {
		t.Errorf("logo center pixel = %v, want %v", got, red)
	}
}

func TestPlaceBadgeLogoOnly(t *testing.T) {
	o := DefaultOptions()
	canvas := solid(1080, 1080, color.NRGBA{A: 255})

	badge, _ := PlaceBadge(canvas, solid(400, 200, red), "", nil, color.White, o, 600)
	if !badge.Trademark.Empty() {
		t.Errorf("trademark placed: %v", badge.Trademark)
	}
	if badge.Logo.Max.Y != 1080-o.BottomMargin {
		t.Errorf("logo bottom = %d, want %d", badge.Logo.Max.Y, 1080-o.BottomMargin)
	}
}

func TestPlaceBadgeTransparentLogo(t *testing.T) {
	o := DefaultOptions()
	canvas := solid(1080, 1080, color.NRGBA{B: 90, A: 255})
	before := append([]byte(nil), canvas.Pix...)

	badge, _ := PlaceBadge(canvas, solid(300, 300, color.NRGBA{R: 255}), "", nil, color.White, o, 600)
	if badge.Logo.Empty() {
		t.Fatal("logo not placed")
	}
	if d := cmp.Diff(before, canvas.Pix); d != "" {
		t.Error("fully transparent logo changed the canvas")
	}
}

func TestPlaceBadgeOverlapWarning(t *testing.T) {
	o := DefaultOptions()
	canvas := solid(1080, 1080, color.NRGBA{A: 255})
	face := testFace(t, o.TrademarkFont.Size)

	_, warnings := PlaceBadge(canvas, solid(400, 400, red), o.TrademarkText, face, color.White, o, 1000)
	var lw LayoutWarning
	if len(warnings) != 1 || !errors.As(warnings[0], &lw) || lw.Kind != BadgeOverlap {
		t.Errorf("warnings = %v, want one BadgeOverlap", warnings)
	}
}

func TestPlaceBadgeNothing(t *testing.T) {
	canvas := solid(100, 100, color.NRGBA{A: 255})
	badge, warnings := PlaceBadge(canvas, nil, "", nil, color.White, DefaultOptions(), 50)
	if badge.Top() != -1 || len(warnings) != 0 {
		t.Errorf("got badge %v warnings %v, want nothing placed", badge, warnings)
	}
}
