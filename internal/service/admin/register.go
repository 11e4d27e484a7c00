package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
)

// Registrar ties the admin service into the HTTP server. Routes here are
// expected to sit behind the deployment's admin authorization layer.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the admin routes to the echo server
func (r *Registrar) Register(e *echo.Echo) {
	svc := NewService(r.appCtx)

	e.POST("/admin/matches", func(c echo.Context) error {
		var req MatchPairRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		if err := svc.ForceMatch(c.Request().Context(), &req); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	e.DELETE("/admin/matches", func(c echo.Context) error {
		var req MatchPairRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		if err := svc.ForceUnmatch(c.Request().Context(), &req); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
}
