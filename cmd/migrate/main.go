// Command migrate applies or inspects the iris schema migrations.
//
//	migrate [-dsn URL] up|down|version
//	migrate [-dsn URL] steps N
//	migrate [-dsn URL] force V
//
// Without -dsn the database section of config.toml, with its overlay and
// IRIS_DB_* overrides, supplies the connection.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/iris/internal/config"
	"github.com/JaimeStill/iris/migrations"
	"github.com/JaimeStill/iris/pkg/database"
)

func main() {
	dsn := flag.String("dsn", "", "postgres connection URL (default: from config)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [-dsn URL] up|down|version|steps N|force V")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*dsn, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(dsn string, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dsn = cfg.Database.URL()
	}

	m, err := database.NewMigrator(migrations.FS, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "up":
		return report(m.Up(), "schema up to date")
	case "down":
		return report(m.Down(), "schema reverted")
	case "steps":
		n, err := intArg(cmd, rest)
		if err != nil {
			return err
		}
		return report(m.Steps(n), fmt.Sprintf("applied %d steps", n))
	case "force":
		v, err := intArg(cmd, rest)
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force version %d: %w", v, err)
		}
		fmt.Printf("forced version %d\n", v)
		return nil
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version %d (dirty: %t)\n", v, dirty)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// report treats ErrNoChange as success.
func report(err error, done string) error {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	fmt.Println(done)
	return nil
}

func intArg(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s takes exactly one integer argument", cmd)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cmd, err)
	}
	return n, nil
}
