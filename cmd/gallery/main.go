// Command gallery runs the image gallery server. All configuration
// comes from environment variables; a .env file is honored when present
// so local runs don't need exported vars.
package main

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mtcacg/gallery"
)

func main() {
	_ = godotenv.Load()

	cfg := gallery.SiteConfig{
		Name:             gallery.EnvOr("SITE_NAME", "Gallery"),
		URL:              strings.TrimSuffix(gallery.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Addr:             gallery.EnvOr("ADDR", ":3000"),
		DatabasePath:     gallery.EnvOr("DATABASE_PATH", "data/gallery.db"),
		BotToken:         gallery.MustEnv("BOT_TOKEN"),
		UpstreamAPIBase:  gallery.EnvOr("UPSTREAM_API_BASE", ""),
		UpstreamFileBase: gallery.EnvOr("UPSTREAM_FILE_BASE", ""),
		AdminPassword:    gallery.EnvOr("ADMIN_PASSWORD", ""),
		SessionSecret:    gallery.EnvOr("ADMIN_SESSION_SECRET", ""),
		CookieSecure:     strings.EqualFold(gallery.EnvOr("COOKIE_SECURE", ""), "true"),
	}
	if ttl, err := time.ParseDuration(gallery.EnvOr("ASSET_CACHE_TTL", "")); err == nil {
		cfg.AssetCacheTTL = ttl
	}

	// Runs headless: every page answers JSON until an embedding site
	// injects its own templ views.
	app := gallery.New(cfg, gallery.ViewFuncs{})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
