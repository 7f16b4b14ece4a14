// Package database owns the gorm connection shared by the service.
package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/khankhulgun/svgcanvas/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConnected is returned by packages that need DB before Connect ran.
var ErrNotConnected = errors.New("database is not connected")

// DB is the process wide connection, set by Connect.
var DB *gorm.DB

// Open returns a gorm connection for one of the supported drivers.
func Open(connection, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch connection {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlserver", "mssql":
		dialector = sqlserver.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database connection %q", connection)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", connection, err)
	}

	if connection == "sqlite" || connection == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite serialises writers anyway; one connection avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Connect opens the configured database and stores it in DB.
func Connect(cfg config.Database) error {
	db, err := Open(cfg.Connection, cfg.DSN)
	if err != nil {
		return err
	}
	DB = db
	slog.Info("database connected", "connection", cfg.Connection)
	return nil
}

// Close releases DB if it is open.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}

type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	slog.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}
