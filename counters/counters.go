// Package counters keeps named, monotonically increasing totals such as
// page visits and finished conversions.
package counters

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/khankhulgun/svgcanvas/database"
	"github.com/khankhulgun/svgcanvas/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	Visits      = "visits"
	Conversions = "conversions"
)

var ErrInvalidName = errors.New("invalid counter name")

var nameRe = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// Hit increments the named counter, creating it on first use, and returns
// the new total.
func Hit(ctx context.Context, name string) (int64, error) {
	if !ValidName(name) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if database.DB == nil {
		return 0, database.ErrNotConnected
	}

	var counter models.Counter
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.Counter{Name: name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Counter{}).Where("name = ?", name).
			Update("count", gorm.Expr("count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", name).First(&counter).Error
	})
	if err != nil {
		return 0, fmt.Errorf("hit counter %s: %w", name, err)
	}
	return counter.Count, nil
}

// Total returns the named counter, 0 if it was never hit.
func Total(ctx context.Context, name string) (int64, error) {
	if !ValidName(name) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if database.DB == nil {
		return 0, database.ErrNotConnected
	}

	var counter models.Counter
	err := database.DB.WithContext(ctx).Where("name = ?", name).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}
	return counter.Count, nil
}
