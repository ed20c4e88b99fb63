package main

import (
	"github.com/joho/godotenv"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/config"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/env"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
)

func main() {
	const component = "Main"

	// .env is optional
	_ = godotenv.Load()

	appLogger := logger.New(logger.ParseLevel(env.GetString("LOG_LEVEL", "info")))
	defer appLogger.Sync()

	dbCfg, err := config.LoadDB(env.GetString("SICIAP_SECRETS", "secrets.yaml"))
	if err != nil {
		appLogger.Fatal(component, "Failed to load configuration: error=%v", err)
	}

	cfg := apiConfig{
		addr:          env.GetString("ADDR", ":8080"),
		maxUploadSize: int64(env.GetInt("MAX_UPLOAD_MB", 64)) << 20,
		db:            dbCfg,
	}

	manager := db.NewManager(cfg.db, appLogger)
	defer manager.Dispose()

	app := &application{
		config:  cfg,
		console: siciap.NewConsole(manager, appLogger),
		log:     appLogger,
	}

	mux := app.mount()

	if err := app.run(mux); err != nil {
		appLogger.Fatal(component, "Server stopped: error=%v", err)
	}
}
