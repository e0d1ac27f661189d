package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/migration"
	"github.com/vendorhub/backend/migrations"
)

const defaultMigrationsPath = "migrations"

var errUsage = errors.New("invalid arguments")

// dbCommand runs against an open migrator; args excludes the command name
type dbCommand func(m *migration.Migrator, log *zap.Logger, args []string) error

var dbCommands = map[string]dbCommand{
	"up":      func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Up() },
	"down":    func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Down() },
	"step":    stepCommand,
	"goto":    gotoCommand,
	"version": versionCommand,
	"force":   forceCommand,
	"drop":    dropCommand,
}

func main() {
	migrationsPath := flag.String("path", "", "Migrations directory; the embedded migrations are used when empty")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command, rest := args[0], args[1:]

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", *migrationsPath))

	switch command {
	case "create":
		err = createCommand(sourceDir(*migrationsPath), log, rest)
	case "list":
		err = listCommand(sourceDir(*migrationsPath), log)
	default:
		run, ok := dbCommands[command]
		if !ok {
			log.Error("Unknown command", zap.String("command", command))
			printUsage()
			os.Exit(1)
		}
		err = withMigrator(*migrationsPath, log, func(m *migration.Migrator) error {
			return run(m, log, rest)
		})
	}

	if errors.Is(err, errUsage) {
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func withMigrator(path string, log *zap.Logger, fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("driver %q: migrations target postgres, sqlite schemas are created by the server", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var m *migration.Migrator
	if path == "" {
		m, err = migration.NewFromFS(db, migrations.FS, log)
	} else {
		var abs string
		if abs, err = filepath.Abs(path); err == nil {
			m, err = migration.New(db, abs, log)
		}
	}
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()
	return fn(m)
}

func createCommand(dir string, log *zap.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("create needs a name: %w", errUsage)
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}
	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath))
	return nil
}

func listCommand(dir string, log *zap.Logger) error {
	files, err := migration.ListMigrations(dir)
	if err != nil {
		return err
	}
	log.Info("Available migrations", zap.Int("count", len(files)))
	for _, f := range files {
		fmt.Println("  -", f)
	}
	return nil
}

func stepCommand(m *migration.Migrator, _ *zap.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("step needs a count: %w", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("step count %q: %w", args[0], errUsage)
	}
	return m.Steps(n)
}

func gotoCommand(m *migration.Migrator, _ *zap.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("goto needs a version: %w", errUsage)
	}
	version, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("version %q: %w", args[0], errUsage)
	}
	return m.GoTo(uint(version))
}

func versionCommand(m *migration.Migrator, log *zap.Logger, _ []string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		log.Info("No migrations applied")
		return nil
	}
	log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func forceCommand(m *migration.Migrator, log *zap.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("force needs a version: %w", errUsage)
	}
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("version %q: %w", args[0], errUsage)
	}
	log.Warn("Forcing migration version", zap.Int("version", version))
	return m.Force(version)
}

func dropCommand(m *migration.Migrator, _ *zap.Logger, args []string) error {
	if len(args) == 0 || (args[0] != "-confirm" && args[0] != "--confirm") {
		return fmt.Errorf("drop requires -confirm: %w", errUsage)
	}
	return m.Drop()
}

func sourceDir(path string) string {
	if path == "" {
		return defaultMigrationsPath
	}
	return path
}

func printUsage() {
	fmt.Println(`vendorhub schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the applied version
  force <version>       Set the version without running migrations
  drop -confirm         Drop every database object
  create <name> [desc]  Write a new up/down migration pair
  list                  List migration files

Flags:
  -path string          Migrations directory (default: embedded migrations)
  -log-level string     debug, info, warn or error (default: info)

The database is read from VH_DATABASE_HOST, VH_DATABASE_PORT, VH_DATABASE_USER,
VH_DATABASE_PASSWORD, VH_DATABASE_DBNAME and VH_DATABASE_SSLMODE.`)
}
