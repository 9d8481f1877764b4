package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ceylon_travel/internal/lib/jwt"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/transport/http/dto/response"
)

// AdminOnly requires a bearer admin token signed with secret.
// An empty secret disables the check.
func AdminOnly(log *slog.Logger, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
			}

			claims, err := jwt.VerifyAdmin(strings.TrimSpace(token), secret)
			if err != nil {
				log.Warn("admin token rejected", slog.String("path", c.Path()), sl.Err(err))
				return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
			}

			c.Set("admin", claims.Subject)
			return next(c)
		}
	}
}
