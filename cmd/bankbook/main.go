package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/simaogato/bankbook/internal/adapter/cli"
	"github.com/simaogato/bankbook/internal/adapter/repository/flatfile"
	"github.com/simaogato/bankbook/internal/adapter/repository/sqlite"
	"github.com/simaogato/bankbook/internal/config"
	"github.com/simaogato/bankbook/internal/domain"
	"github.com/simaogato/bankbook/internal/logger"
	"github.com/simaogato/bankbook/internal/usecase/registry"
)

// Values swapped in at build time
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bankbook: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("bankbook", flag.ContinueOnError)
	envFile := fs.String("env-file", ".env", "Path to an optional .env file")
	store := fs.String("store", "", "Account store: flatfile or sqlite (overrides BANK_STORE)")
	dataFile := fs.String("data-file", "", "Flat file used by Save/Load (overrides BANK_DATA_FILE)")
	sqlitePath := fs.String("sqlite-path", "", "SQLite database file (overrides BANK_SQLITE_PATH)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides BANK_LOG_LEVEL)")
	logFile := fs.String("log-file", "", "Path to log file (overrides BANK_LOG_FILE)")
	autoLoad := fs.Bool("autoload", false, "Load saved accounts at startup (overrides BANK_AUTOLOAD)")
	printVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *printVersion {
		_, _ = fmt.Fprintf(stdout, "bankbook %s, commit %s\n", version, commit)
		return nil
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	// Flags given on the command line win over the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			cfg.Store = *store
		case "data-file":
			cfg.DataFile = *dataFile
		case "sqlite-path":
			cfg.SQLitePath = *sqlitePath
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "autoload":
			cfg.AutoLoad = *autoLoad
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, logCloser := logger.New(cfg.LogLevel, cfg.LogFile)
	defer func() { _ = logCloser.Close() }()
	log.Info("Started bankbook", "version", version, "store", cfg.Store)

	accountStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("Failed to open account store", "err", err)
		return err
	}
	defer closeStore()

	reg := registry.NewAccountRegistry(accountStore, log)

	if cfg.AutoLoad {
		if _, err := reg.Load(ctx); err != nil {
			// The session still starts; the user can fix the file and load again
			_, _ = fmt.Fprintf(stdout, "Warning: %v\n", err)
		}
	}

	shell := cli.NewShell(reg, stdin, stdout, log.With(slog.String("component", "cli")))
	if err := shell.Run(ctx); err != nil {
		return err
	}

	log.Info("Stopped bankbook")
	return nil
}

// openStore builds the configured AccountStore and a function releasing its resources
func openStore(ctx context.Context, cfg *config.Config) (domain.AccountStore, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.NewDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewAccountRepository(db), func() { _ = db.Close() }, nil
	default:
		return flatfile.NewAccountStore(cfg.DataFile), func() {}, nil
	}
}
