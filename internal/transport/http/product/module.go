package product

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"

	"github.com/Qathar8/Arianna-beauty/internal/auth"
	"github.com/Qathar8/Arianna-beauty/internal/config"
	service "github.com/Qathar8/Arianna-beauty/internal/service/product"
)

// Module wires HTTP catalog handlers.
var Module = fx.Options(
	fx.Provide(func(svc *service.Service, cfg config.Config) *Handler {
		return NewHandler(svc, cfg)
	}),
	fx.Invoke(func(e *echo.Echo, h *Handler, gate *auth.Gate) {
		Register(e, h, gate)
	}),
)
