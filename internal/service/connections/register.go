package connections

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
)

// Registrar ties the connections service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the connections routes to the echo server
func (r *Registrar) Register(e *echo.Echo) {
	svc := NewService(r.appCtx)

	e.GET("/connections", func(c echo.Context) error {
		viewerID, err := strconv.ParseUint(c.QueryParam("viewer_id"), 10, 64)
		if err != nil {
			return svcErr.InvalidArgument("viewer_id must be a valid uint64")
		}
		resp, err := svc.ListMatches(c.Request().Context(), viewerID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.POST("/connections/contacts", func(c echo.Context) error {
		var req ResolveContactsRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		resp, err := svc.ResolveContacts(c.Request().Context(), &req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.DELETE("/connections", func(c echo.Context) error {
		var req UnmatchRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		if err := svc.Unmatch(c.Request().Context(), &req); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
}
