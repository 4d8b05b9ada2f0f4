package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Line is one wrapped line with its measured size and top-left draw position.
type Line struct {
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// TextBlock is the laid out quote. Top and Bottom bound the drawn lines.
type TextBlock struct {
	Lines  []Line `json:"lines"`
	Top    int    `json:"top"`
	Bottom int    `json:"bottom"`
}

func (b TextBlock) Height() int { return b.Bottom - b.Top }

// Wrap fills lines of at most width runes with Python textwrap's default
// rules. Whitespace runs become spaces, words break after inner
// hyphens ("state-" "of-" "the-" "art"), and a word longer than the line starts
// on the current line with whatever space is left. Widths are counted in runes,
// not pixels, so rendered lines vary in width. width <= 0 disables wrapping.
func Wrap(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(strings.Fields(text), " ")}
	}

	chunks := splitChunks(text)
	var lines []string
	for len(chunks) > 0 {
		if len(lines) > 0 && chunks[0][0] == ' ' {
			chunks = chunks[1:]
			continue
		}
		var cur []rune
		for len(chunks) > 0 && len(cur)+len(chunks[0]) <= width {
			cur = append(cur, chunks[0]...)
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && len(chunks[0]) > width {
			end := longWordBreak(chunks[0], width-len(cur))
			cur = append(cur, chunks[0][:end]...)
			chunks[0] = chunks[0][end:]
		}
		if s := strings.TrimRight(string(cur), " "); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// splitChunks cuts text into alternating space runs and words, with words
// further split after hyphens that join two letter runs.
func splitChunks(text string) [][]rune {
	var (
		chunks [][]rune
		cur    []rune
		space  bool
	)
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, cur)
			cur = nil
		}
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !space {
				flush()
				space = true
			}
			cur = append(cur, ' ')
			continue
		}
		if space {
			flush()
			space = false
		}
		cur = append(cur, r)
	}
	flush()

	out := make([][]rune, 0, len(chunks))
	for _, c := range chunks {
		start := 0
		for i := range c {
			if c[i] == '-' && hyphenBreak(c, i) {
				out = append(out, c[start:i+1])
				start = i + 1
			}
		}
		out = append(out, c[start:])
	}
	return out
}

// hyphenBreak reports whether w may break after the hyphen at i: it needs two
// letters (or letter, hyphen, letter) before it and two letters after it,
// optionally separated by another hyphen.
func hyphenBreak(w []rune, i int) bool {
	letter := func(j int) bool { return j >= 0 && j < len(w) && unicode.IsLetter(w[j]) }
	before := letter(i-1) && (letter(i-2) || (i >= 2 && w[i-2] == '-' && letter(i-3)))
	after := letter(i+1) && (letter(i+2) || (i+2 < len(w) && w[i+2] == '-' && letter(i+3)))
	return before && after
}

// longWordBreak returns how many runes of an over-long chunk go on a line
// with room runes left, preferring to end the piece on a hyphen.
func longWordBreak(chunk []rune, room int) int {
	if room < 1 {
		return 0
	}
	for h := room - 1; h > 0; h-- {
		if chunk[h] != '-' {
			continue
		}
		for _, r := range chunk[:h] {
			if r != '-' {
				return h + 1
			}
		}
		break
	}
	return room
}

// MeasureText returns the ink box of s drawn with its top at the face ascent:
// the right edge and the bottom edge, in pixels.
func MeasureText(face font.Face, s string) (w, h int) {
	bounds, _ := font.BoundString(face, s)
	w = bounds.Max.X.Ceil()
	h = (face.Metrics().Ascent + bounds.Max.Y).Ceil()
	if w < 0 {
		w = 0
	}
	return w, h
}

// LayoutText centers lines on a w x h canvas. The block starts at
// h/2 - len(lines)*firstLineHeight/2 and every line advances by its own
// height plus padding.
func LayoutText(face font.Face, lines []string, w, h, padding int) (TextBlock, []error) {
	if len(lines) == 0 {
		return TextBlock{Top: h / 2, Bottom: h / 2}, []error{LayoutWarning{Kind: EmptyQuote}}
	}

	var warnings []error
	_, first := MeasureText(face, lines[0])
	y := h/2 - len(lines)*first/2
	block := TextBlock{Top: y, Lines: make([]Line, 0, len(lines))}
	for _, s := range lines {
		lw, lh := MeasureText(face, s)
		if lw > w {
			warnings = append(warnings, LayoutWarning{
				Kind:   LineOverflow,
				Detail: fmt.Sprintf("%q is %dpx on a %dpx canvas", s, lw, w),
			})
		}
		block.Lines = append(block.Lines, Line{Text: s, X: (w - lw) / 2, Y: y, Width: lw, Height: lh})
		block.Bottom = y + lh
		y += lh + padding
	}
	return block, warnings
}

// DrawText paints every line of block onto dst.
func DrawText(dst draw.Image, face font.Face, block TextBlock, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	ascent := face.Metrics().Ascent
	for _, l := range block.Lines {
		d.Dot = fixed.Point26_6{X: fixed.I(l.X), Y: fixed.I(l.Y) + ascent}
		d.DrawString(l.Text)
	}
}
