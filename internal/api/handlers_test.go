package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	imagepkg "github.com/youruser/quotecard/internal/image"
	"github.com/youruser/quotecard/internal/quotes"
)

func newTestRouter(t *testing.T, quoteURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	o := imagepkg.DefaultOptions()
	o.Size = 400
	o.QuoteFont.Size = 40
	o.TrademarkFont.Size = 20
	o.LogoQRText = "https://example.com"
	o.OutputDir = t.TempDir()
	renderer, err := imagepkg.NewRenderer(o, log)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	RegisterRoutes(r, &Handler{
		Renderer:   renderer,
		Log:        log,
		Forismatic: quotes.Forismatic{BaseURL: quoteURL},
		Ninjas:     quotes.APINinjas{BaseURL: quoteURL},
		WordLimit:  20,
	})
	return r
}

func backgroundServer(t *testing.T) *httptest.Server {
	t.Helper()
	b, err := imagepkg.GenerateQRPNG("background", 256)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bg.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t, ""), http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestQR(t *testing.T) {
	w := do(newTestRouter(t, ""), http.MethodGet, "/api/qr?text=hello&size=128", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("status = %d, type = %q", w.Code, w.Header().Get("Content-Type"))
	}
	if _, err := png.Decode(w.Body); err != nil {
		t.Error(err)
	}
}

func TestRender(t *testing.T) {
	bg := backgroundServer(t)
	r := newTestRouter(t, "")

	w := do(r, http.MethodPost, "/api/render", renderRequest{
		BackgroundURL:    bg.URL + "/bg.png",
		Quote:            "Simplicity is the ultimate sophistication",
		Author:           "Leonardo da Vinci",
		IncludeLogo:      true,
		IncludeTrademark: true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Render-Id") == "" {
		t.Error("missing X-Render-Id")
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 400 {
		t.Errorf("image is %v, want 400x400", img.Bounds())
	}
}

func TestRenderErrors(t *testing.T) {
	bg := backgroundServer(t)
	r := newTestRouter(t, "")

	testCases := []struct {
		name string
		body any
		want int
	}{
		{"no background", map[string]string{"quote": "hi"}, http.StatusBadRequest},
		{"background 404", renderRequest{BackgroundURL: bg.URL + "/missing.png", Quote: "hi"}, http.StatusUnprocessableEntity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(r, http.MethodPost, "/api/render", tc.body); w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("author") != "" {
			w.Write([]byte(`[{"quote":"Know thyself","author":"Socrates"}]`))
			return
		}
		w.Write([]byte(`{"quoteText":"Stay hungry","quoteAuthor":"Steve Jobs"}`))
	}))
	defer srv.Close()
	r := newTestRouter(t, srv.URL)

	testCases := []struct {
		name string
		path string
		code int
		want quotes.Quote
	}{
		{"forismatic", "/api/quote", http.StatusOK, quotes.Quote{Text: "Stay hungry", Author: "Steve Jobs"}},
		{"ninjas", "/api/quote?source=ninjas&author=Socrates", http.StatusOK, quotes.Quote{Text: "Know thyself", Author: "Socrates"}},
		{"ninjas without author", "/api/quote?source=ninjas", http.StatusBadRequest, quotes.Quote{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tc.path, nil)
			if w.Code != tc.code {
				t.Fatalf("status = %d, want %d", w.Code, tc.code)
			}
			if tc.code != http.StatusOK {
				return
			}
			var got quotes.Quote
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}
