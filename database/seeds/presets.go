package seeds

import (
	"fmt"
	"log/slog"

	"github.com/khankhulgun/svgcanvas/database"
	"github.com/khankhulgun/svgcanvas/presets"
	"gorm.io/gorm/clause"
)

// Seed inserts the built-in presets, leaving rows that already exist alone,
// and drops cached presets.
func Seed() error {
	if database.DB == nil {
		return database.ErrNotConnected
	}
	for _, preset := range presets.Defaults {
		preset := preset
		err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&preset).Error
		if err != nil {
			return fmt.Errorf("failed to seed preset %s: %w", preset.Name, err)
		}
	}
	presets.Invalidate()
	slog.Debug("presets seeded", "count", len(presets.Defaults))
	return nil
}
