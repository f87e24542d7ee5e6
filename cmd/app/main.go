package main

import (
	"flag"
	"log"
	"os"

	"Stockle/internal/di"
	"Stockle/pkg/config"
	applogger "Stockle/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load .env if present (secret key, redis address)
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	l.Info("starting",
		applogger.String("env", cfg.Environment),
		applogger.String("cache", cfg.Cache.Backend),
		applogger.String("timezone", cfg.Game.Timezone),
	)

	// Wire all dependencies
	app, err := di.InitializeApp(cfg, l)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		l.Error("app error", applogger.Error(err))
		os.Exit(1)
	}
}
