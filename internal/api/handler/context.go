package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/marketplace-api/internal/api/middleware"
	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// currentUserID extracts the authenticated subject id injected by the Auth
// middleware. Its presence proves the middleware ran; a protected handler
// reached without it is a wiring error, rejected with 401.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// currentUser extracts the resolved user record injected by the Auth middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
