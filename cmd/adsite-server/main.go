package main

import (
	"flag"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/adscalemedia/adsite-backend/internal/app"
	"github.com/adscalemedia/adsite-backend/internal/config"
	"github.com/adscalemedia/adsite-backend/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	// .env is optional; real deployments set environment variables directly.
	if err := godotenv.Load(); err == nil {
		log.Info(".env loaded")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	logging.Setup(cfg.Log)

	if *migrateOnly {
		if errMigrate := app.Migrate(cfg); errMigrate != nil {
			log.WithError(errMigrate).Fatal("migrate")
		}
		log.Info("migrations applied")
		return
	}

	if errRun := app.RunServer(cfg); errRun != nil {
		log.WithError(errRun).Fatal("server exited")
	}
}
