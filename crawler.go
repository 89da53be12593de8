package gallery

import (
	"crypto/subtle"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Endpoints the crawler bot talks to. All of them authenticate with the
// same shared bot token the asset proxy uses, sent as a bearer header.

func (a *App) checkBotAuth(c echo.Context) bool {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.Config.BotToken)) == 1
}

// handleGetHistory returns every id the bot should treat as already
// published, comma-joined, so restarts don't repost old items.
func (a *App) handleGetHistory(c echo.Context) error {
	if !a.checkBotAuth(c) {
		return c.NoContent(http.StatusUnauthorized)
	}
	ids, err := a.Store.HistoryIDs()
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, strings.Join(ids, ","))
}

// handleUpdateHistory accepts a comma-joined id list and records the
// ids as seen, including ones the bot skipped without storing.
func (a *App) handleUpdateHistory(c echo.Context) error {
	if !a.checkBotAuth(c) {
		return c.NoContent(http.StatusUnauthorized)
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if err := a.Store.AddHistory(strings.Split(string(body), ",")); err != nil {
		return err
	}
	return c.String(http.StatusOK, "OK")
}

// handleIngest stores one crawled record. Re-posting an existing id is
// a no-op, matching the crawler's insert-or-ignore semantics.
func (a *App) handleIngest(c echo.Context) error {
	if !a.checkBotAuth(c) {
		return c.NoContent(http.StatusUnauthorized)
	}
	var img Image
	if err := c.Bind(&img); err != nil {
		return c.String(http.StatusBadRequest, "invalid record")
	}
	if img.ID == "" || img.FileName == "" {
		return c.String(http.StatusBadRequest, "id and file_name are required")
	}
	if img.CreatedAt == 0 {
		img.CreatedAt = time.Now().Unix()
	}
	if err := a.Store.SaveImage(img); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
