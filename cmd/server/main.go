package main

import (
	"github.com/sirupsen/logrus"

	"tribune/internal/config"
	"tribune/internal/db"
	"tribune/internal/logger"
	"tribune/internal/router"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogJSON)

	conn, err := db.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}

	r, err := router.New(conn, cfg, "./web/templates")
	if err != nil {
		logrus.Fatalf("router: %v", err)
	}

	logrus.Infof("tribune server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
