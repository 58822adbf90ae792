package site

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safemama/site/seo"
	"github.com/safemama/site/views"
)

func (a *App) adminPage(c echo.Context) views.Page {
	p := a.page(c, seo.Meta{Title: "Admin | " + a.Config.Name, NoIndex: true})
	p.CSRFToken = CsrfToken(c)
	return p
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.adminPage(c), false))
	}
	stats, err := a.analyticsHandler.Summary(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(a.adminPage(c), stats))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.adminPage(c), true))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// requireAdmin guards the admin API.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		return next(c)
	}
}
