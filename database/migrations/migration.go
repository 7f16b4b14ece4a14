package migrations

import (
	"fmt"

	"github.com/khankhulgun/svgcanvas/database"
	"github.com/khankhulgun/svgcanvas/models"
)

func Migrate() error {
	if database.DB == nil {
		return database.ErrNotConnected
	}
	if err := database.DB.AutoMigrate(
		&models.CanvasPreset{},
		&models.Counter{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
