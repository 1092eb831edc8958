package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/minaorangina/makao/config"
	"github.com/minaorangina/makao/game"
	"github.com/minaorangina/makao/ranking"
)

// A hot-seat Makao table in the terminal. Every line is a player name
// followed by a chat command, e.g. "ada .join" or "bob .p 1 2".
func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("could not load config")
	}

	ctx := context.Background()

	rankingStore, release, err := cfg.OpenRankingStore(ctx)
	if err != nil {
		logger.WithError(err).Fatal("could not open ranking store")
	}
	defer release()

	session := game.NewSession(game.Opts{
		TableID: "LOCAL",
		Ranking: ranking.New(rankingStore, logger),
		Logger:  logger,
	})

	c := newConsole(os.Stdout)
	c.intro()
	if err := c.run(ctx, os.Stdin, session); err != nil {
		logger.WithError(err).Fatal("could not read input")
	}
}
