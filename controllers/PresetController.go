package controllers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khankhulgun/svgcanvas/config"
	"github.com/khankhulgun/svgcanvas/models"
	"github.com/khankhulgun/svgcanvas/presets"
)

func Presets(c *fiber.Ctx) error {
	list, err := presets.All(c.UserContext())
	if err != nil {
		slog.Error("failed to list presets", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error retrieving presets",
		})
	}

	custom := models.CanvasPreset{
		Name:        presets.Custom,
		Width:       config.Config.Canvas.DefaultWidth,
		Height:      config.Config.Canvas.DefaultHeight,
		Description: "Custom Size",
	}
	return c.JSON(append([]models.CanvasPreset{custom}, list...))
}
