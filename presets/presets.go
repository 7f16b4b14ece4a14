// Package presets resolves named canvas sizes.
package presets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/khankhulgun/svgcanvas/database"
	"github.com/khankhulgun/svgcanvas/models"
	"gorm.io/gorm"
)

// Custom selects the explicit width and height instead of a preset.
const Custom = "custom"

// ErrUnknownPreset is returned for a name that is neither Custom nor stored.
var ErrUnknownPreset = errors.New("unknown preset")

// Defaults are the canvas sizes offered out of the box.
var Defaults = []models.CanvasPreset{
	{Name: "Instagram Square", Width: 1080, Height: 1080, Description: "Perfect for Instagram posts", SortOrder: 1},
	{Name: "Instagram Story", Width: 1080, Height: 1920, Description: "Vertical Instagram stories", SortOrder: 2},
	{Name: "Twitter Post", Width: 1200, Height: 675, Description: "Twitter image posts", SortOrder: 3},
	{Name: "LinkedIn Post", Width: 1200, Height: 627, Description: "LinkedIn social posts", SortOrder: 4},
	{Name: "Facebook Cover", Width: 1200, Height: 630, Description: "Facebook cover photos", SortOrder: 5},
	{Name: "YouTube Thumbnail", Width: 1280, Height: 720, Description: "YouTube video thumbnails", SortOrder: 6},
}

// TTL is how long a fetched preset stays cached.
var TTL = 60 * time.Minute

var presetCache *ristretto.Cache

func init() {
	var err error
	presetCache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 10,
		BufferItems: 64,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
}

// Lookup finds a preset by name.
type Lookup func(ctx context.Context, name string) (models.CanvasPreset, error)

// Fetch reads a preset from the database, going through the cache. Names
// match case-insensitively. A cached preset is served for up to TTL after
// the row changes unless Invalidate is called.
func Fetch(ctx context.Context, name string) (models.CanvasPreset, error) {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)

	if cached, found := presetCache.Get(key); found {
		if preset, ok := cached.(models.CanvasPreset); ok {
			return preset, nil
		}
	}

	if database.DB == nil {
		return models.CanvasPreset{}, database.ErrNotConnected
	}
	var preset models.CanvasPreset
	err := database.DB.WithContext(ctx).Where("LOWER(name) = ?", key).First(&preset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return preset, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	if err != nil {
		return preset, err
	}

	presetCache.SetWithTTL(key, preset, 1, TTL)
	presetCache.Wait()

	return preset, nil
}

// Builtin looks a preset up in Defaults without touching the database.
func Builtin(_ context.Context, name string) (models.CanvasPreset, error) {
	name = strings.TrimSpace(name)
	for _, p := range Defaults {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return models.CanvasPreset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

// All lists stored presets in display order.
func All(ctx context.Context) ([]models.CanvasPreset, error) {
	if database.DB == nil {
		return nil, database.ErrNotConnected
	}
	var list []models.CanvasPreset
	if err := database.DB.WithContext(ctx).Order("sort_order ASC").Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Resolve returns the canvas size for name: the explicit width and height
// for "" or Custom, otherwise the size of the preset found by lookup.
func Resolve(ctx context.Context, lookup Lookup, name string, width, height int) (int, int, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, Custom) {
		return width, height, nil
	}
	preset, err := lookup(ctx, name)
	if err != nil {
		return 0, 0, err
	}
	return preset.Width, preset.Height, nil
}

// Invalidate drops every cached preset. Seeding calls it.
func Invalidate() {
	presetCache.Clear()
}
