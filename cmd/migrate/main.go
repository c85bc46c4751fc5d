package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/joho/godotenv"

	"github.com/LexovateAyacucho/qhoar-web/internal/config"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/migrations"
)

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

var (
	loadDotenv  = func() error { return godotenv.Load() }
	loadCfg     = config.Load
	newMigrator = func(dsn string) (migrator, error) {
		src, err := migrations.Source()
		if err != nil {
			return nil, err
		}
		return migrate.NewWithSourceInstance("iofs", src, dsn)
	}
	stdout io.Writer = os.Stdout
)

const usage = "usage: migrate [-steps N] up|down|version"

func run(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	steps := fs.Int("steps", 0, "apply only N migrations (up) or roll back N (down)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New(usage)
	}
	if *steps < 0 {
		return errors.New("-steps must be positive")
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()

	m, err := newMigrator(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to init migrator: %w", err)
	}
	defer m.Close()

	switch fs.Arg(0) {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
	default:
		return errors.New(usage)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", fs.Arg(0), err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(stdout, "version=none")
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "version=%d dirty=%t\n", version, dirty)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
