package app

import (
	"go.uber.org/fx"

	"github.com/Qathar8/Arianna-beauty/internal/auth"
	"github.com/Qathar8/Arianna-beauty/internal/cache"
	"github.com/Qathar8/Arianna-beauty/internal/config"
	"github.com/Qathar8/Arianna-beauty/internal/database"
	"github.com/Qathar8/Arianna-beauty/internal/logger"
	"github.com/Qathar8/Arianna-beauty/internal/messaging"
	"github.com/Qathar8/Arianna-beauty/internal/observability"
	repositoryorder "github.com/Qathar8/Arianna-beauty/internal/repository/order"
	repositoryproduct "github.com/Qathar8/Arianna-beauty/internal/repository/product"
	httpserver "github.com/Qathar8/Arianna-beauty/internal/server/http"
	serviceorder "github.com/Qathar8/Arianna-beauty/internal/service/order"
	serviceproduct "github.com/Qathar8/Arianna-beauty/internal/service/product"
	transporthttp "github.com/Qathar8/Arianna-beauty/internal/transport/http"
	"github.com/Qathar8/Arianna-beauty/internal/worker"
	workerorder "github.com/Qathar8/Arianna-beauty/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	auth.Module,
	repositoryproduct.Module,
	repositoryorder.Module,
	serviceproduct.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
