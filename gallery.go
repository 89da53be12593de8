// Package gallery is a searchable image gallery server built with Go,
// Echo, and SQLite. It serves search and random-pick APIs over a store
// of crawled image records, resolves multi-page post groupings,
// aggregates per-artist profiles, and proxies image bytes from the
// upstream file host behind an in-process edge cache.
//
// HTML rendering is owned by the embedding site: handlers call the
// templ components injected through ViewFuncs and fall back to JSON
// when a component is absent.
package gallery

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components the handlers call when
// rendering pages. Any nil field makes the matching handler answer with
// its JSON payload instead.
type ViewFuncs struct {
	Home           func(includeR18 bool) templ.Component
	About          func() templ.Component
	Detail         func(page DetailPage) templ.Component
	ArtistList     func(artists []ArtistSummary, query string, page int) templ.Component
	Artist         func(profile ArtistProfile) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(images []Image, message string, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central gallery application. It wires together the store,
// content filter, asset proxy, edge cache, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Filter *ContentFilter
	Proxy  *AssetProxy
	Cache  *AssetCache
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a gallery App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, proxy, cache, middleware, and routes,
// then runs the server until it shuts down.
func (a *App) Start() error {
	if a.Config.BotToken == "" {
		return fmt.Errorf("gallery: BotToken is required")
	}
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("gallery: SessionSecret is required when AdminPassword is set")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("gallery: init store: %w", err)
	}
	a.Store = store

	a.Filter = NewContentFilter(a.Config.Blocklist)
	a.Proxy = NewAssetProxy(a.Config.UpstreamAPIBase, a.Config.UpstreamFileBase, a.Config.BotToken)

	cache, err := NewAssetCache(a.Config.AssetCacheSize, a.Config.AssetCacheTTL)
	if err != nil {
		return fmt.Errorf("gallery: init asset cache: %w", err)
	}
	a.Cache = cache

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Pages
	e.GET("/", a.handleHome)
	e.GET("/r18", a.handleHome)
	e.GET("/about", a.handleAbout)
	e.GET("/detail/:id", a.handleDetail)
	e.GET("/artist/:name", a.handleArtist)

	// Data APIs
	e.GET("/api/posts", a.handlePosts)
	e.GET("/api/bg_safe", a.handleBgSafe)
	e.GET("/api/bg_all", a.handleBgAll)
	e.GET("/api/artists", a.handleArtists)

	// Asset proxy, fronted by the edge cache
	e.GET("/image/:handle", a.handleImage)

	// Crawler endpoints, bearer-token guarded
	e.GET("/api/get_history", a.handleGetHistory)
	e.POST("/api/update_history", a.handleUpdateHistory)
	e.POST("/api/ingest", a.handleIngest)

	// Admin surface is optional
	if a.Config.AdminPassword != "" {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.DELETE("/admin/image/:id/", a.handleAdminDelete)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("gallery: required environment variable %s is not set", key)
	}
	return v
}
