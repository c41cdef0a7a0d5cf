package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/blendbooks/blend/pkg/binder"
	"github.com/blendbooks/blend/pkg/catalog"
	"github.com/blendbooks/blend/pkg/config"
	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/blendbooks/blend/pkg/library"
	"github.com/blendbooks/blend/pkg/preferences"
	"github.com/blendbooks/blend/pkg/progress"
	"github.com/blendbooks/blend/pkg/reader"
	"github.com/blendbooks/blend/pkg/resolver"
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/blendbooks/blend/pkg/theme"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// Dependencies are the shared singletons the routes need beyond the database.
type Dependencies struct {
	CatalogClient   *catalog.Client
	CatalogCache    *catalog.Cache
	SettingsService *settings.Service
	Sessions        *reader.Sessions
}

func New(cfg *config.Config, db *bun.DB, deps Dependencies) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	if cfg.FrontendURL != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.FrontendURL},
		}))
	} else {
		e.Use(middleware.CORS())
	}

	health.RegisterRoutes(e)

	resolverService := resolver.NewService(deps.CatalogClient, deps.CatalogCache, deps.SettingsService)
	libraryService := library.NewService(db, deps.CatalogClient, deps.CatalogCache, deps.SettingsService)

	catalog.RegisterRoutes(e, deps.CatalogClient)
	library.RegisterRoutes(e, libraryService)
	resolver.RegisterRoutes(e, resolverService)
	reader.RegisterRoutes(e, deps.Sessions)
	preferences.RegisterRoutes(e, db)
	progress.RegisterRoutes(e, db)
	settings.RegisterRoutes(e, deps.SettingsService)
	theme.RegisterRoutes(e, db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
