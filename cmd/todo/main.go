package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/joho/godotenv"

	"github.com/Makepad-fr/todosphere/internal/cli"
	"github.com/Makepad-fr/todosphere/internal/config"
	"github.com/Makepad-fr/todosphere/internal/logging"
	"github.com/Makepad-fr/todosphere/internal/store"
	"github.com/Makepad-fr/todosphere/internal/store/jsonstore"
	"github.com/Makepad-fr/todosphere/internal/store/sqlitestore"
	"github.com/Makepad-fr/todosphere/internal/tui"
	"github.com/Makepad-fr/todosphere/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; values from it only feed TODOSPHERE_* overrides.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}

	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	configPath := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/todosphere/config.yaml)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		return cli.ExitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		return cli.ExitError
	}
	ui.SetTheme(cfg.Theme)

	logs, err := logging.Init(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		ui.Fail(os.Stderr, "logging: "+err.Error())
		return cli.ExitError
	}
	defer logs.Close()

	ctx := context.Background()
	persister, closer, err := openPersister(ctx, cfg)
	if err != nil {
		ui.Fail(os.Stderr, "storage: "+err.Error())
		return cli.ExitError
	}
	defer closer.Close()

	s, err := store.New(ctx, persister,
		store.WithCurrentUser(cfg.User),
		store.WithSeed(cfg.SeedEnabled()),
		store.WithLogger(logging.Logger),
	)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return cli.ExitError
	}

	code := cli.Run(args, cli.Options{
		Group:        *groupPending,
		Store:        s,
		Directory:    cfg.Directory(),
		ShareBaseURL: cfg.ShareBaseURL,
		ConfigPath:   *configPath,
		Clipboard:    clipboard.WriteAll,
		Interactive:  tui.Run,
	})
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	slog.Debug("command finished", "cmd", args[0], "code", code)
	return code
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func openPersister(ctx context.Context, cfg *config.Config) (store.Persister, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.Open(ctx, cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		js, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return js, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
