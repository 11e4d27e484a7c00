package profile

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
)

// Registrar ties the profile service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes to the echo server
func (r *Registrar) Register(e *echo.Echo) {
	svc := NewService(r.appCtx)

	e.PUT("/profiles/:id", func(c echo.Context) error {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return svcErr.InvalidArgument("profile id must be a valid uint64")
		}
		var req SaveProfileRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		resp, err := svc.Save(c.Request().Context(), userID, &req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})
}
