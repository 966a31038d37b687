package auth

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/presentation/http/response"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

// Claims carries the caller identity asserted by an upstream auth
// collaborator. The API never checks credentials itself; it only trusts
// the pre-validated claim.
type Claims struct {
	Admin bool
}

// Gate guards admin-only routes based on the trusted claim header.
type Gate struct {
	enabled bool
	header  string
	logger  *zap.Logger
}

// Module provides the admin gate to Fx.
var Module = fx.Provide(NewGate)

// NewGate builds the gate from configuration. When disabled it is a
// passthrough and every route stays open.
func NewGate(cfg config.Config, logger *zap.Logger) *Gate {
	return &Gate{
		enabled: cfg.Auth.Enabled,
		header:  cfg.Auth.AdminClaimHeader,
		logger:  logger,
	}
}

// RequireAdmin is an echo middleware rejecting callers without the admin claim.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !g.enabled {
			return next(c)
		}
		claims := g.claimsFrom(c)
		if !claims.Admin {
			return response.New(c).WithError(errorbank.Forbidden("admin access required")).Build()
		}
		return next(c)
	}
}

func (g *Gate) claimsFrom(c echo.Context) Claims {
	raw := c.Request().Header.Get(g.header)
	if raw == "" {
		return Claims{}
	}
	admin, err := strconv.ParseBool(raw)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("malformed admin claim header", zap.String("value", raw))
		}
		return Claims{}
	}
	return Claims{Admin: admin}
}
