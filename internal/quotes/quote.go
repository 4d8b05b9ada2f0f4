// Package quotes supplies quote text to the renderer: from a local file or
// from one of the public quote APIs.
package quotes

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Quote is a quotation with an optional attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

func (q Quote) String() string {
	if q.Author == "" {
		return q.Text
	}
	return q.Text + " - " + q.Author
}

// Limit keeps the first n words of the text. The author is untouched.
func (q Quote) Limit(n int) Quote {
	words := strings.Fields(q.Text)
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	q.Text = strings.Join(words, " ")
	return q
}

// Source produces quotes. Implementations make one request per quote and do not retry.
type Source interface {
	Fetch(ctx context.Context) (Quote, error)
}

// LoadFile reads one quote per non-empty line, or delegates to LoadCSV for
// files with a .csv extension.
func LoadFile(path string) ([]Quote, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadCSV(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Quote
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if t := strings.TrimSpace(sc.Text()); t != "" {
			out = append(out, Quote{Text: t})
		}
	}
	return out, sc.Err()
}

// FetchN calls src n times, skipping failed or empty fetches. The first error
// is returned together with whatever quotes were collected.
func FetchN(ctx context.Context, src Source, n int) ([]Quote, error) {
	var (
		out      []Quote
		firstErr error
	)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		q, err := src.Fetch(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, q)
	}
	return out, firstErr
}
