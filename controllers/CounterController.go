package controllers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khankhulgun/svgcanvas/counters"
)

func CounterTotal(c *fiber.Ctx) error {
	name := c.Params("name")
	total, err := counters.Total(c.UserContext(), name)
	if err != nil {
		return counterError(c, name, err)
	}
	return c.JSON(fiber.Map{"counter": total})
}

func CounterHit(c *fiber.Ctx) error {
	name := c.Params("name")
	total, err := counters.Hit(c.UserContext(), name)
	if err != nil {
		return counterError(c, name, err)
	}
	return c.JSON(fiber.Map{"counter": total})
}

func counterError(c *fiber.Ctx, name string, err error) error {
	if errors.Is(err, counters.ErrInvalidName) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid counter name",
		})
	}
	slog.Error("counter failed", "counter", name, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Error reading counter",
	})
}
