package server

import "github.com/labstack/echo/v4"

// Registrar is a common interface for all HTTP service registrars
type Registrar interface {
	Register(e *echo.Echo)
}
