package svgcanvas

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/khankhulgun/svgcanvas/config"
	"github.com/khankhulgun/svgcanvas/controllers"
	"github.com/khankhulgun/svgcanvas/database/migrations"
	"github.com/khankhulgun/svgcanvas/database/seeds"
	"github.com/khankhulgun/svgcanvas/presets"
	"github.com/khankhulgun/svgcanvas/raster"
)

// New builds a Fiber app configured from config.Config with every route set.
func New() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:   "svgcanvas",
		BodyLimit: config.Config.App.BodyLimit,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	if err := Set(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Set registers the routes on app and prepares the database when configured
// to.
func Set(app *fiber.App) error {
	raster.MaxDimension = config.Config.Canvas.MaxDimension
	presets.TTL = config.Config.Cache.PresetTTL

	app.Get("/", controllers.Index)

	a := app.Group("/svgcanvas/api")
	a.Post("/convert", controllers.Convert)
	a.Get("/presets", controllers.Presets)
	a.Get("/counters/total/:name", controllers.CounterTotal)
	a.Post("/counters/:name", controllers.CounterHit)

	if config.Config.App.Migrate {
		if err := migrations.Migrate(); err != nil {
			return err
		}
	}
	if config.Config.App.Seed {
		if err := seeds.Seed(); err != nil {
			return err
		}
	}
	return nil
}
