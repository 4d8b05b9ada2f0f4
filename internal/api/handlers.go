package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	imagepkg "github.com/youruser/quotecard/internal/image"
	"github.com/youruser/quotecard/internal/quotes"
)

// Handler serves the render API. Renderer is shared by all requests.
type Handler struct {
	Renderer   *imagepkg.Renderer
	Log        logrus.FieldLogger
	Forismatic quotes.Forismatic
	Ninjas     quotes.APINinjas // Author is filled per request
	WordLimit  int
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "quotecard"
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// quote fetches one quote from the selected source: forismatic (default) or ninjas.
func (h *Handler) quote(c *gin.Context) {
	var src quotes.Source = h.Forismatic
	if c.Query("source") == "ninjas" {
		author := c.Query("author")
		if author == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "author is required"})
			return
		}
		n := h.Ninjas
		n.Author = author
		src = n
	}
	q, err := src.Fetch(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Warn("quote fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, q.Limit(h.WordLimit))
}

type renderRequest struct {
	BackgroundURL    string `json:"background_url" binding:"required"`
	Quote            string `json:"quote"`
	Author           string `json:"author"`
	IncludeLogo      bool   `json:"include_logo"`
	IncludeTrademark bool   `json:"include_trademark"`
}

// render downloads the background, composes the graphic and returns it as PNG.
func (h *Handler) render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := ulid.Make().String()
	log := h.Log.WithFields(logrus.Fields{"render_id": id, "background": req.BackgroundURL})
	c.Header("X-Render-Id", id)

	bg, err := imagepkg.DownloadImage(c.Request.Context(), req.BackgroundURL)
	if err != nil {
		log.WithError(err).Warn("background unavailable")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	q := quotes.Quote{Text: req.Quote, Author: req.Author}.Limit(h.WordLimit)
	img, res, err := h.Renderer.Compose(imagepkg.RenderJob{
		Background:       req.BackgroundURL,
		BackgroundImage:  bg,
		Quote:            q.String(),
		IncludeLogo:      req.IncludeLogo,
		IncludeTrademark: req.IncludeTrademark,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var assetErr *imagepkg.AssetError
		if errors.As(err, &assetErr) {
			status = http.StatusUnprocessableEntity
		}
		log.WithError(err).Error("render failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.EncodePNG(buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(res.Warnings) > 0 {
		msgs := make([]string, len(res.Warnings))
		for i, w := range res.Warnings {
			msgs[i] = w.Error()
		}
		c.Header("X-Render-Warnings", strings.Join(msgs, "; "))
	}
	log.WithField("lines", len(res.Text.Lines)).Info("rendered")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
