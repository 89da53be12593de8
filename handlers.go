package gallery

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	if a.Views.Home != nil {
		return Render(c, http.StatusOK, a.Views.Home(c.Path() == "/r18"))
	}
	images, err := a.Store.QueryImages(ListingQuery(0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, images)
}

func (a *App) handleAbout(c echo.Context) error {
	if a.Views.About != nil {
		return Render(c, http.StatusOK, a.Views.About())
	}
	return echo.NewHTTPError(http.StatusNotFound)
}

// handlePosts serves the search/listing API. q=random short-circuits to
// a single uniform random pick. Store failures degrade to an empty
// array with a 500 status; the status code is the only signal that
// distinguishes a failed query from a legitimately empty result.
func (a *App) handlePosts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "random" {
		images, err := a.Store.QueryImages(RandomQuery())
		if err != nil {
			return a.emptyResult(c, err)
		}
		return c.JSON(http.StatusOK, images)
	}
	offset := ParseOffset(c.QueryParam("offset"))
	images, err := a.Store.QueryImages(SearchQuery(q, offset))
	if err != nil {
		return a.emptyResult(c, err)
	}
	return c.JSON(http.StatusOK, images)
}

func (a *App) handleBgSafe(c echo.Context) error {
	return a.handleBgRandom(c, false)
}

func (a *App) handleBgAll(c echo.Context) error {
	return a.handleBgRandom(c, true)
}

// handleBgRandom picks a random background. The safe variant excludes
// anything matching the blocklist; with type=image the selected asset
// is served directly through the proxy, forced to a .jpg download name.
func (a *App) handleBgRandom(c echo.Context, includeR18 bool) error {
	filter := a.Filter
	if includeR18 {
		filter = nil
	}
	img, err := a.Store.QueryImage(SafeRandomQuery(filter))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.String(http.StatusNotFound, "Not found")
		}
		return err
	}
	if c.QueryParam("type") == "image" {
		return a.serveAsset(c, img.FileName, "jpg", "")
	}
	return c.JSON(http.StatusOK, []Image{img})
}

// handleImage serves a proxied asset. The edge cache is consulted first
// and only status-200 responses are stored back, after the response has
// already gone out.
func (a *App) handleImage(c echo.Context) error {
	handle := c.Param("handle")
	key := c.Request().URL.Path
	if raw := c.Request().URL.RawQuery; raw != "" {
		key += "?" + raw
	}
	return a.serveAsset(c, handle, c.QueryParam("dl"), key)
}

// serveAsset relays one asset through the proxy. A non-empty cacheKey
// enables the edge cache for the request; the cache write happens in a
// goroutine after the body has been copied out, so a slow or failed
// write never delays or fails the response.
func (a *App) serveAsset(c echo.Context, handle, dlExt, cacheKey string) error {
	if cacheKey != "" {
		if entry, ok := a.Cache.Get(cacheKey); ok {
			return writeCachedAsset(c, entry)
		}
	}

	asset, err := a.Proxy.Fetch(c.Request().Context(), handle, dlExt)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return c.String(http.StatusNotFound, "404")
		}
		c.Logger().Errorf("asset proxy: %v", err)
		return c.String(http.StatusInternalServerError, "Error")
	}
	defer asset.Body.Close()

	respHeader := c.Response().Header()
	for k, vals := range asset.Header {
		for _, v := range vals {
			respHeader.Add(k, v)
		}
	}
	c.Response().WriteHeader(asset.Status)

	if cacheKey != "" && asset.Status == http.StatusOK {
		var buf bytes.Buffer
		if _, err := io.Copy(c.Response(), io.TeeReader(asset.Body, &buf)); err != nil {
			// Client went away mid-copy; the partial buffer must not be cached.
			return nil
		}
		header := asset.Header.Clone()
		body := buf.Bytes()
		go a.Cache.Put(cacheKey, http.StatusOK, header, body)
		return nil
	}

	_, _ = io.Copy(c.Response(), asset.Body)
	return nil
}

func writeCachedAsset(c echo.Context, entry cachedAsset) error {
	respHeader := c.Response().Header()
	for k, vals := range entry.Header {
		for _, v := range vals {
			respHeader.Add(k, v)
		}
	}
	c.Response().WriteHeader(entry.Status)
	_, err := c.Response().Write(entry.Body)
	return err
}

func (a *App) handleDetail(c echo.Context) error {
	page, err := a.Store.BuildDetail(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return a.renderNotFound(c)
		}
		return err
	}
	if a.Views.Detail != nil {
		return Render(c, http.StatusOK, a.Views.Detail(page))
	}
	return c.JSON(http.StatusOK, page)
}

func (a *App) handleArtists(c echo.Context) error {
	q := c.QueryParam("q")
	page := ParsePage(c.QueryParam("page"))
	artists, err := a.Store.ListArtists(q, page)
	if err != nil {
		c.Logger().Errorf("artist listing: %v", err)
		return c.JSON(http.StatusInternalServerError, []ArtistSummary{})
	}
	if a.Views.ArtistList != nil {
		return Render(c, http.StatusOK, a.Views.ArtistList(artists, q, page))
	}
	return c.JSON(http.StatusOK, artists)
}

func (a *App) handleArtist(c echo.Context) error {
	name := c.Param("name")
	page := ParsePage(c.QueryParam("page"))
	profile, err := a.Store.BuildArtistProfile(name, page)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return a.renderNotFound(c)
		}
		return err
	}
	if a.Views.Artist != nil {
		return Render(c, http.StatusOK, a.Views.Artist(profile))
	}
	return c.JSON(http.StatusOK, profile)
}

// emptyResult is the fail-soft query boundary: log the store error and
// answer with an empty JSON array and a 500.
func (a *App) emptyResult(c echo.Context, err error) error {
	c.Logger().Errorf("query failed: %v", err)
	return c.JSON(http.StatusInternalServerError, []Image{})
}

func (a *App) renderNotFound(c echo.Context) error {
	if a.Views.NotFound != nil {
		return Render(c, http.StatusNotFound, a.Views.NotFound())
	}
	return c.String(http.StatusNotFound, "404")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
