package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/quotecard/internal/api"
	"github.com/youruser/quotecard/internal/config"
	imagepkg "github.com/youruser/quotecard/internal/image"
	"github.com/youruser/quotecard/internal/quotes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}

	renderer, err := imagepkg.NewRenderer(cfg.Render, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up renderer")
	}

	r := gin.Default()
	api.RegisterRoutes(r, &api.Handler{
		Renderer:  renderer,
		Log:       log,
		Ninjas:    quotes.APINinjas{APIKey: cfg.NinjasKey},
		WordLimit: 20,
	})

	log.WithField("addr", "http://localhost:"+cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
