package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/youruser/quotecard/internal/util"
)

const (
	ForismaticURL = "https://api.forismatic.com/api/1.0/"
	APINinjasURL  = "https://api.api-ninjas.com/v1/quotes"
)

var ErrNoQuote = errors.New("no quote returned")

// Forismatic fetches random English quotes.
type Forismatic struct {
	BaseURL string
}

func (s Forismatic) Fetch(ctx context.Context) (Quote, error) {
	base := s.BaseURL
	if base == "" {
		base = ForismaticURL
	}
	b, err := util.GetBytes(ctx, base+"?method=getQuote&format=json&lang=en", nil)
	if err != nil {
		return Quote{}, fmt.Errorf("forismatic: %w", err)
	}
	var resp struct {
		QuoteText   string `json:"quoteText"`
		QuoteAuthor string `json:"quoteAuthor"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return Quote{}, fmt.Errorf("forismatic: decode: %w", err)
	}
	q := Quote{Text: strings.TrimSpace(resp.QuoteText), Author: strings.TrimSpace(resp.QuoteAuthor)}
	if q.Text == "" {
		return Quote{}, fmt.Errorf("forismatic: %w", ErrNoQuote)
	}
	if q.Author == "" {
		q.Author = "Unknown"
	}
	return q, nil
}

// APINinjas fetches quotes by a given author. The quote is attributed to
// Author as requested, not as returned.
type APINinjas struct {
	BaseURL string
	APIKey  string
	Author  string
}

func (s APINinjas) Fetch(ctx context.Context) (Quote, error) {
	base := s.BaseURL
	if base == "" {
		base = APINinjasURL
	}
	b, err := util.GetBytes(ctx, base+"?author="+url.QueryEscape(s.Author), http.Header{"X-Api-Key": {s.APIKey}})
	if err != nil {
		return Quote{}, fmt.Errorf("api-ninjas: %w", err)
	}
	var resp []struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return Quote{}, fmt.Errorf("api-ninjas: decode: %w", err)
	}
	if len(resp) == 0 || strings.TrimSpace(resp[0].Quote) == "" {
		return Quote{}, fmt.Errorf("api-ninjas: %w", ErrNoQuote)
	}
	return Quote{Text: strings.TrimSpace(resp[0].Quote), Author: s.Author}, nil
}
