package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/minaorangina/makao/config"
	"github.com/minaorangina/makao/ranking"
	"github.com/minaorangina/makao/server"
	"github.com/minaorangina/makao/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("could not load config")
	}
	logger.SetLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rankingStore, release, err := cfg.OpenRankingStore(ctx)
	if err != nil {
		logger.WithError(err).Fatal("could not open ranking store")
	}
	defer release()

	scores := ranking.New(rankingStore, logger)
	if err := scores.Load(ctx); err != nil {
		// a broken store still lets people play
		logger.WithError(err).Error("could not load ranking")
	}

	tables := store.NewInMemoryTableStore(store.Opts{Ranking: scores, Logger: logger})
	gameServer := server.NewServer(server.Opts{
		Store:          tables,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	defer gameServer.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           gameServer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.Addr,
			"ranking": cfg.RankingBackend,
		}).Info("listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped")
	}

	if err := scores.Flush(context.Background()); err != nil {
		logger.WithError(err).Error("could not save ranking")
	}
}
