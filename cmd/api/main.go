package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/blendbooks/blend/pkg/catalog"
	"github.com/blendbooks/blend/pkg/config"
	"github.com/blendbooks/blend/pkg/database"
	"github.com/blendbooks/blend/pkg/migrations"
	"github.com/blendbooks/blend/pkg/reader"
	"github.com/blendbooks/blend/pkg/resolver"
	"github.com/blendbooks/blend/pkg/server"
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/blendbooks/blend/pkg/version"
	"github.com/blendbooks/blend/pkg/worker"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting blend", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	catalogClient := catalog.NewClient(cfg)
	catalogCache := catalog.NewCache(catalogClient)
	settingsService := settings.NewService(db)
	resolverService := resolver.NewService(catalogClient, catalogCache, settingsService)
	sessions := reader.NewSessions(db, resolverService, settingsService)

	wrkr := worker.New(cfg, catalogCache)

	srv, err := server.New(cfg, db, server.Dependencies{
		CatalogClient:   catalogClient,
		CatalogCache:    catalogCache,
		SettingsService: settingsService,
		Sessions:        sessions,
	})
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		log.Info("server started", logger.Data{"port": listener.Addr().(*net.TCPAddr).Port})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	wrkr.Start()
	log.Info("worker started")

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	wrkr.Shutdown()
	log.Info("worker shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
