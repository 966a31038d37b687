package order

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"

	"github.com/Qathar8/Arianna-beauty/internal/auth"
	service "github.com/Qathar8/Arianna-beauty/internal/service/order"
)

// Module wires HTTP order handlers.
var Module = fx.Options(
	fx.Provide(func(svc *service.Service) *Handler {
		return NewHandler(svc)
	}),
	fx.Invoke(func(e *echo.Echo, h *Handler, gate *auth.Gate) {
		Register(e, h, gate)
	}),
)
