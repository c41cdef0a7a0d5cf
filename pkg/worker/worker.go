package worker

import (
	"context"
	"time"

	"github.com/blendbooks/blend/pkg/catalog"
	"github.com/blendbooks/blend/pkg/config"
	"github.com/google/uuid"
	"github.com/robinjoseph08/golib/logger"
)

// Worker periodically refreshes the catalog snapshot so the library listing
// and document resolution don't pay an upstream round trip per request.
type Worker struct {
	config *config.Config
	log    logger.Logger

	cache *catalog.Cache

	shutdown chan struct{}
	done     chan struct{}
}

func New(cfg *config.Config, cache *catalog.Cache) *Worker {
	return &Worker{
		config: cfg,
		log:    logger.New(),

		cache: cache,

		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go w.refreshLoop()
}

func (w *Worker) refreshLoop() {
	duration := w.config.CatalogRefreshInterval
	timer := time.NewTimer(duration)

	for {
		select {
		case <-w.shutdown:
			w.done <- struct{}{}
			return
		case <-timer.C:
			id, err := uuid.NewRandom()
			if err != nil {
				w.log.Err(err).Error("new uuid error")
				timer.Reset(duration)
				continue
			}
			log := w.log.ID(id.String())
			ctx := log.WithContext(context.Background())

			ctx, cancel := context.WithTimeout(ctx, w.config.CatalogFetchTimeout)
			books, err := w.cache.Refresh(ctx)
			cancel()
			if err != nil {
				log.Err(err).Error("catalog refresh error")
			} else {
				log.Info("catalog refreshed", logger.Data{"books": len(books)})
			}

			timer.Reset(duration)
		}
	}
}

func (w *Worker) Shutdown() {
	close(w.shutdown)
	<-w.done
}
