// Package config reads settings from the environment, optionally seeded from a
// .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	imagepkg "github.com/youruser/quotecard/internal/image"
)

type Config struct {
	Render imagepkg.Options

	Port       string
	LogLevel   string
	Workers    int
	InputDir   string
	QuotesFile string
	NinjasKey  string
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, starting from the defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		Render:     imagepkg.DefaultOptions(),
		Port:       "8080",
		LogLevel:   "info",
		Workers:    4,
		InputDir:   "in/raw",
		QuotesFile: "in/quotes.txt",
	}
	p := parser{getenv: getenv}

	p.str("PORT", &c.Port)
	p.str("LOG_LEVEL", &c.LogLevel)
	p.integer("QUOTECARD_WORKERS", &c.Workers)
	p.str("QUOTECARD_IN_DIR", &c.InputDir)
	p.str("QUOTECARD_QUOTES_FILE", &c.QuotesFile)
	p.str("API_NINJAS_KEY", &c.NinjasKey)

	o := &c.Render
	p.positiveInt("QUOTECARD_SIZE", &o.Size)
	if v := getenv("QUOTECARD_TINT"); v != "" {
		col, err := ParseRGB(v)
		if err != nil {
			p.fail("QUOTECARD_TINT", err)
		} else {
			o.TintColor = col
		}
	}
	p.positiveFloat("QUOTECARD_BRIGHTNESS", &o.Brightness)
	p.integer("QUOTECARD_WRAP_WIDTH", &o.WrapWidth)
	p.integer("QUOTECARD_LINE_PADDING", &o.LinePadding)
	p.str("QUOTECARD_QUOTE_FONT", &o.QuoteFont.Path)
	p.float("QUOTECARD_QUOTE_FONT_SIZE", &o.QuoteFont.Size)
	p.str("QUOTECARD_TRADEMARK_FONT", &o.TrademarkFont.Path)
	p.float("QUOTECARD_TRADEMARK_FONT_SIZE", &o.TrademarkFont.Size)
	p.str("QUOTECARD_TRADEMARK", &o.TrademarkText)
	p.str("QUOTECARD_LOGO", &o.LogoPath)
	p.str("QUOTECARD_LOGO_QR", &o.LogoQRText)
	p.float("QUOTECARD_LOGO_FRACTION", &o.LogoFraction)
	p.integer("QUOTECARD_LOGO_SPACING", &o.LogoSpacing)
	p.integer("QUOTECARD_BOTTOM_MARGIN", &o.BottomMargin)
	p.str("QUOTECARD_OUT_DIR", &o.OutputDir)

	if p.err != nil {
		return Config{}, p.err
	}
	return c, nil
}

// ParseRGB parses "r,g,b" with each channel in 0..255.
func ParseRGB(raw string) (color.NRGBA, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return color.NRGBA{}, errors.New("expected format r,g,b")
	}
	var vals [3]uint8
	for i, part := range parts {
		s := strings.TrimSpace(part)
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid channel: %q", s)
		}
		vals[i] = uint8(v)
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 0xff}, nil
}

// NewLogger returns a text logger with full timestamps at the given level.
func NewLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (p *parser) str(key string, dst *string) {
	if v := p.getenv(key); v != "" {
		*dst = v
	}
}

func (p *parser) integer(key string, dst *int) {
	v := p.getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
		return
	}
	*dst = n
}

func (p *parser) float(key string, dst *float64) {
	v := p.getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, err)
		return
	}
	*dst = f
}

var errNotPositive = errors.New("must be greater than zero")

func (p *parser) positiveInt(key string, dst *int) {
	n := *dst
	p.integer(key, &n)
	if n <= 0 {
		p.fail(key, errNotPositive)
		return
	}
	*dst = n
}

func (p *parser) positiveFloat(key string, dst *float64) {
	f := *dst
	p.float(key, &f)
	if f <= 0 {
		p.fail(key, errNotPositive)
		return
	}
	*dst = f
}
