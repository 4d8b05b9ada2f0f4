package imagepkg

import "fmt"

// AssetError reports a background, logo or font that is missing or cannot be decoded.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// IOError reports a failure writing the output directory or file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

type WarningKind string

const (
	EmptyQuote   WarningKind = "empty_quote"
	LineOverflow WarningKind = "line_overflow"
	BadgeOverlap WarningKind = "badge_overlap"
)

// LayoutWarning is a non-fatal layout condition; the canvas is rendered as-is.
type LayoutWarning struct {
	Kind   WarningKind
	Detail string
}

func (w LayoutWarning) Error() string {
	if w.Detail == "" {
		return "layout: " + string(w.Kind)
	}
	return "layout: " + string(w.Kind) + ": " + w.Detail
}
