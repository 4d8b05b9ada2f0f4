package imagepkg

import (
	"image"
	"image/color"
)

// FontSpec selects a font file and point size. An empty Path uses the embedded Go Regular face.
type FontSpec struct {
	Path string
	Size float64
}

// Options is the full configuration surface of a Renderer. Branding (trademark,
// logo) lives here rather than in package state so renderers with different
// branding can run side by side.
type Options struct {
	Size int // canvas edge; the canvas is always Size x Size

	TintColor  color.NRGBA
	Brightness float64
	TextColor  color.Color

	WrapWidth   int // characters per line
	LinePadding int // added to each line advance; negative tightens

	QuoteFont     FontSpec
	TrademarkFont FontSpec
	TrademarkText string

	LogoPath     string
	LogoQRText   string
	Logo         image.Image // preset logo, shared read-only
	LogoFraction float64
	LogoSpacing  int
	BottomMargin int

	OutputDir string
}

// DefaultOptions mirrors the layout the generator has always produced.
func DefaultOptions() Options {
	return Options{
		Size:          1080,
		TintColor:     color.NRGBA{R: 200, G: 200, B: 200, A: 0xff},
		Brightness:    0.6,
		TextColor:     color.White,
		WrapWidth:     24,
		LinePadding:   -10,
		QuoteFont:     FontSpec{Size: 115},
		TrademarkFont: FontSpec{Size: 52},
		TrademarkText: "YOUR_TRADEMARK",
		LogoFraction:  0.2,
		LogoSpacing:   10,
		BottomMargin:  10,
		OutputDir:     "out",
	}
}

// withDefaults replaces unset fields with DefaultOptions values so a partially
// populated Options still renders. A field is unset when it is zero (or
// negative) and zero cannot produce a usable card: Size, TintColor,
// Brightness, TextColor, WrapWidth, the font sizes, LogoFraction and
// OutputDir. LinePadding, LogoSpacing and BottomMargin are offsets for which
// 0 is meaningful, so they are kept as given; start from DefaultOptions to get
// the stock spacing.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Size <= 0 {
		o.Size = d.Size
	}
	if o.TintColor == (color.NRGBA{}) {
		o.TintColor = d.TintColor
	}
	if o.Brightness <= 0 {
		o.Brightness = d.Brightness
	}
	if o.TextColor == nil {
		o.TextColor = d.TextColor
	}
	if o.WrapWidth <= 0 {
		o.WrapWidth = d.WrapWidth
	}
	if o.QuoteFont.Size <= 0 {
		o.QuoteFont.Size = d.QuoteFont.Size
	}
	if o.TrademarkFont.Size <= 0 {
		o.TrademarkFont.Size = d.TrademarkFont.Size
	}
	if o.LogoFraction <= 0 {
		o.LogoFraction = d.LogoFraction
	}
	if o.OutputDir == "" {
		o.OutputDir = d.OutputDir
	}
	return o
}
