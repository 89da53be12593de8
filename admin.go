package gallery

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const adminDashboardSize = 100

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return a.renderAdminLogin(c, false)
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderAdminLogin(c, true)
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminDelete removes a record, the server-side counterpart of
// the crawler bot's delete command.
func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if id == "" {
		return c.String(http.StatusBadRequest, "id required")
	}
	if err := a.Store.DeleteImage(id); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminLogin(c echo.Context, showError bool) error {
	if a.Views.AdminLogin != nil {
		return Render(c, http.StatusOK, a.Views.AdminLogin(showError, CsrfToken(c)))
	}
	if showError {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}
	return c.String(http.StatusOK, "Login required")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	images, err := a.Store.RecentImages(adminDashboardSize)
	if err != nil {
		return err
	}
	if a.Views.AdminDashboard != nil {
		return Render(c, http.StatusOK, a.Views.AdminDashboard(images, msg, CsrfToken(c)))
	}
	return c.JSON(http.StatusOK, images)
}
