package db

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tribune/internal/models"
)

// Open connects to postgres when a DSN is given, otherwise falls back to a
// local sqlite file, and migrates the schema. The handle is returned rather
// than stored in a package global so services receive it explicitly.
func Open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)
	if databaseURL != "" {
		conn, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		conn, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}

	logrus.Info("database connection established")
	return conn, nil
}

// Migrate creates or updates the three forum tables.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Post{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
