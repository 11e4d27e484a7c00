package discovery

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
)

// Registrar ties the discovery service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the discovery service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the discovery routes to the echo server
func (r *Registrar) Register(e *echo.Echo) {
	svc := NewService(r.appCtx)

	e.PUT("/discovery/decisions", func(c echo.Context) error {
		var req RecordDecisionRequest
		if err := c.Bind(&req); err != nil {
			return svcErr.InvalidArgument("malformed request body")
		}
		resp, err := svc.RecordDecision(c.Request().Context(), &req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/discovery/candidates", func(c echo.Context) error {
		viewerID, err := parseID(c.QueryParam("viewer_id"))
		if err != nil {
			return svcErr.InvalidArgument("viewer_id must be a valid uint64")
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		resp, err := svc.Candidates(c.Request().Context(), viewerID, limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/discovery/admirers", func(c echo.Context) error {
		viewerID, err := parseID(c.QueryParam("viewer_id"))
		if err != nil {
			return svcErr.InvalidArgument("viewer_id must be a valid uint64")
		}
		onlyNew := c.QueryParam("only_new") == "true"
		var pageToken *string
		if t := c.QueryParam("page_token"); t != "" {
			pageToken = &t
		}
		resp, err := svc.Admirers(c.Request().Context(), viewerID, onlyNew, pageToken)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/discovery/admirers/count", func(c echo.Context) error {
		viewerID, err := parseID(c.QueryParam("viewer_id"))
		if err != nil {
			return svcErr.InvalidArgument("viewer_id must be a valid uint64")
		}
		resp, err := svc.AdmirerCount(c.Request().Context(), viewerID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	})
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
