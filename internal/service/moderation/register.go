package moderation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
)

// Registrar ties the moderation service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the moderation routes to the echo server
func (r *Registrar) Register(e *echo.Echo) {
	svc := NewService(r.appCtx)

	e.POST("/moderation/reports", func(c echo.Context) error {
		var req FileReportRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		resp, err := svc.FileReport(c.Request().Context(), &req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, resp)
	})
}
