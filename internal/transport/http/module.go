package http

import (
	"go.uber.org/fx"

	ordertransport "github.com/Qathar8/Arianna-beauty/internal/transport/http/order"
	producttransport "github.com/Qathar8/Arianna-beauty/internal/transport/http/product"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	producttransport.Module,
	ordertransport.Module,
)
