package gallery

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTML response with the given
// status code.
func Render(c echo.Context, code int, cmp templ.Component) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.WriteHeader(code)
	return cmp.Render(c.Request().Context(), res.Writer)
}
