package site

import (
	"embed"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the static assets shipped with the site:
// share.js, site.css, favicon.svg
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

func (a *App) handleAsset(name string) echo.HandlerFunc {
	return echo.StaticFileHandler("embedded/"+name, EmbeddedAssets)
}
