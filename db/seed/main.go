package main

import (
	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/pkg/database"
	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
)

func main() {
	cfg, err := environments.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Log.Env, cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Warnf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedTestData(db); err != nil {
		logger.Fatalf("Failed to seed test data: %v", err)
	}

	logger.Infof("Seed completed successfully")
}
