package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafeteria/cmd"
	"cafeteria/internal/adapters/out/postgres/migrations"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

type flags struct {
	envFile     string
	menuSeed    string
	migrateOnly bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error parsing flags: %v", err)
	}

	configs := getConfigs(opts.envFile)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	if err = migrations.Up(configs.DSN(), logger); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	if opts.migrateOnly {
		return
	}

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer app.Close()

	seedMenu(ctx, app, opts.menuSeed, logger)

	jobManager, err := app.NewJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := app.NewRouter()
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	e.Logger.SetLevel(configs.EchoLogLevel())

	startWebServer(ctx, e, configs.HTTPPort, logger)
}

func parseFlags(args []string) (flags, error) {
	var opts flags

	set := pflag.NewFlagSet("cafeteria", pflag.ContinueOnError)
	set.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment (optional)")
	set.StringVar(&opts.menuSeed, "menu-seed", "configs/menu.yaml", "YAML menu inserted when the menu is empty; empty to skip")
	set.BoolVar(&opts.migrateOnly, "migrate-only", false, "apply database migrations and exit")

	err := set.Parse(args)
	return opts, err
}

func getConfigs(envFile string) cmd.Config {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading %s file: %v", envFile, err)
	}

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	return config
}

func seedMenu(ctx context.Context, app *cmd.CompositionRoot, path string, logger *slog.Logger) {
	if path == "" {
		return
	}

	entries, err := cmd.LoadMenuSeed(path)
	if err != nil {
		log.Fatalf("Error loading menu seed: %v", err)
	}

	inserted, err := app.SeedMenu(ctx, entries)
	if err != nil {
		log.Fatalf("Error seeding menu: %v", err)
	}
	if inserted > 0 {
		logger.Info("menu seeded", "items", inserted)
	}
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) {
	go func() {
		logger.Info("http server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
}
