package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api/middleware"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Both the
// user id and a known role must be present.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	raw, _ := c.Get(middleware.CtxRole).(string)
	role, ok := domain.ParseRole(raw)
	if userID == "" || !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return userID, role, nil
}
