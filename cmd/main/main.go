package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/kanban-board/pkg/config"
	"github.com/matt-steen/kanban-board/pkg/controller"
	"github.com/matt-steen/kanban-board/pkg/db"
	"github.com/matt-steen/kanban-board/pkg/kanban"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/matt-steen/kanban-board/pkg/viewstate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	dirPerms := 0o755
	filePerms := 0o666

	for _, path := range []string{cfg.Log.Path, cfg.DB.Path} {
		if err := os.MkdirAll(filepath.Dir(path), fs.FileMode(dirPerms)); err != nil {
			return fmt.Errorf("error creating directory for %s: %w", path, err)
		}
	}

	logFile, err := os.OpenFile(cfg.Log.Path, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return fmt.Errorf("error opening log file %s: %w", cfg.Log.Path, err)
	}

	defer logFile.Close()

	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("endpoint", cfg.Fetch.Endpoint).Str("db", cfg.DB.Path).Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.DB.Path)
	if err != nil {
		return err
	}

	defer database.Close()

	view := viewstate.New(ctx, database)
	tickets := store.New(cfg.Fetch.Endpoint, nil, store.WithTimeout(cfg.Fetch.Timeout))
	session := kanban.NewSession(tickets, view)

	ctrl, err := controller.NewController(ctx, session)
	if err != nil {
		return err
	}

	return ctrl.Go()
}
