package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/quotecard/internal/util"
)

// RenderJob is one background + quote combination.
type RenderJob struct {
	Index            int
	Background       string      // path, used when BackgroundImage is nil
	BackgroundImage  image.Image // already decoded background
	Quote            string
	IncludeLogo      bool
	IncludeTrademark bool
	OutputName       string // overrides the derived file name
}

// Result describes a finished render. Warnings are non-fatal: LayoutWarning
// values and an *AssetError when the logo could not be loaded.
type Result struct {
	Path     string    `json:"path,omitempty"`
	Text     TextBlock `json:"text"`
	Badge    Badge     `json:"badge"`
	Warnings []error   `json:"-"`
}

// Renderer runs the tint, text and badge pipeline. It is safe for concurrent
// use; every render owns its canvas and font faces.
type Renderer struct {
	opts      Options
	log       logrus.FieldLogger
	quoteFont *opentype.Font
	tmFont    *opentype.Font
}

func NewRenderer(opts Options, log logrus.FieldLogger) (*Renderer, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	opts = opts.withDefaults()

	qf, err := LoadFont(opts.QuoteFont.Path)
	if err != nil {
		return nil, fmt.Errorf("quote font: %w", err)
	}
	tf, err := LoadFont(opts.TrademarkFont.Path)
	if err != nil {
		return nil, fmt.Errorf("trademark font: %w", err)
	}

	if opts.Logo == nil && opts.LogoQRText != "" {
		size := int(float64(opts.Size) * opts.LogoFraction)
		logo, err := GenerateQRImage(opts.LogoQRText, size)
		if err != nil {
			return nil, fmt.Errorf("qr logo: %w", err)
		}
		opts.Logo = logo
	}

	return &Renderer{opts: opts, log: log, quoteFont: qf, tmFont: tf}, nil
}

func (r *Renderer) Options() Options { return r.opts }

// Compose builds the finished canvas for job without writing it anywhere.
func (r *Renderer) Compose(job RenderJob) (*image.NRGBA, Result, error) {
	var res Result
	o := r.opts
	log := r.log.WithFields(logrus.Fields{"job": job.Index, "background": job.Background})

	var (
		canvas *image.NRGBA
		err    error
	)
	if job.BackgroundImage != nil {
		canvas, err = NewCanvas(job.BackgroundImage, o.Size, o.Size)
	} else {
		canvas, err = LoadCanvas(job.Background, o.Size, o.Size)
	}
	if err != nil {
		return nil, res, err
	}

	// tint before drawing so text and badge keep their colors
	canvas = Tint(canvas, o.TintColor, o.Brightness)

	quoteFace, err := newFace(r.quoteFont, o.QuoteFont.Size)
	if err != nil {
		return nil, res, err
	}
	defer quoteFace.Close()

	lines := Wrap(job.Quote, o.WrapWidth)
	block, warnings := LayoutText(quoteFace, lines, o.Size, o.Size, o.LinePadding)
	DrawText(canvas, quoteFace, block, o.TextColor)
	res.Text = block

	var (
		trademark string
		tmFace    font.Face
	)
	if job.IncludeTrademark && o.TrademarkText != "" {
		tmFace, err = newFace(r.tmFont, o.TrademarkFont.Size)
		if err != nil {
			return nil, res, err
		}
		defer tmFace.Close()
		trademark = o.TrademarkText
	}

	var logo image.Image
	if job.IncludeLogo {
		logo, err = r.loadLogo()
		if err != nil {
			log.WithError(err).Warn("skipping logo")
			warnings = append(warnings, err)
		}
	}

	badge, bw := PlaceBadge(canvas, logo, trademark, tmFace, o.TextColor, o, block.Bottom)
	res.Badge = badge
	res.Warnings = append(warnings, bw...)

	for _, w := range res.Warnings {
		var lw LayoutWarning
		if errors.As(w, &lw) {
			log.WithField("kind", lw.Kind).Debug(lw.Error())
		}
	}
	return canvas, res, nil
}

// Render composes job and writes it as PNG under the output directory.
func (r *Renderer) Render(job RenderJob) (Result, error) {
	img, res, err := r.Compose(job)
	if err != nil {
		return res, err
	}

	if err := util.EnsureDir(r.opts.OutputDir); err != nil {
		return res, &IOError{Path: r.opts.OutputDir, Err: err}
	}
	name := job.OutputName
	if name == "" {
		name = OutputName(job.Index, job.Quote)
	}
	path := filepath.Join(r.opts.OutputDir, name)
	if err := savePNG(path, img); err != nil {
		return res, err
	}
	res.Path = path

	r.log.WithFields(logrus.Fields{"job": job.Index, "path": path}).Info("Output image saved")
	return res, nil
}

func (r *Renderer) loadLogo() (image.Image, error) {
	if r.opts.Logo != nil {
		return r.opts.Logo, nil
	}
	if r.opts.LogoPath == "" {
		return nil, &AssetError{Path: "<logo>", Err: errors.New("no logo configured")}
	}
	return openImage(r.opts.LogoPath)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return &IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}

const prefixLen = 10

// OutputName derives "{index}_{prefix}.png" from the first characters of the
// quote, with whitespace runs folded to "_" and path-unsafe characters dropped.
func OutputName(index int, quote string) string {
	r := []rune(quote)
	if len(r) > prefixLen {
		r = r[:prefixLen]
	}
	prefix := strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return ' '
		}
		if unicode.IsControl(c) || strings.ContainsRune(`/\:*?"<>|`, c) {
			return -1
		}
		return c
	}, string(r))
	prefix = strings.Join(strings.Fields(prefix), "_")
	return fmt.Sprintf("%d_%s.png", index, prefix)
}
