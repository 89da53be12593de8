package gallery

import "time"

// SiteConfig holds all configuration for a gallery site.
type SiteConfig struct {
	Name string // Site name (default "Gallery")
	URL  string // Canonical URL (default "http://localhost:3000")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/gallery.db")

	BotToken         string // Required: upstream file-host credential, also the bearer token for crawler endpoints
	UpstreamAPIBase  string // File-host resolve endpoint base (default "https://api.telegram.org")
	UpstreamFileBase string // File-host fetch endpoint base (default "https://api.telegram.org/file")

	AdminPassword string // Admin login password; empty disables the admin surface
	SessionSecret string // Required when admin is enabled
	CookieSecure  bool   // Set true for HTTPS

	Blocklist []string // Safe-view keyword blocklist (default DefaultBlocklist)

	AssetCacheSize int           // Max cached /image responses (default 512)
	AssetCacheTTL  time.Duration // Cached response lifetime (default 12h)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Gallery"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/gallery.db"
	}
	if c.UpstreamAPIBase == "" {
		c.UpstreamAPIBase = "https://api.telegram.org"
	}
	if c.UpstreamFileBase == "" {
		c.UpstreamFileBase = "https://api.telegram.org/file"
	}
	if c.Blocklist == nil {
		c.Blocklist = DefaultBlocklist
	}
	if c.AssetCacheSize == 0 {
		c.AssetCacheSize = defaultAssetCacheSize
	}
	if c.AssetCacheTTL == 0 {
		c.AssetCacheTTL = defaultAssetCacheTTL
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
