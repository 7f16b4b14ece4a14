package controllers

import (
	_ "embed"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khankhulgun/svgcanvas/counters"
)

//go:embed views/index.html
var indexPage []byte

// Index serves the upload form and counts the visit.
func Index(c *fiber.Ctx) error {
	if _, err := counters.Hit(c.UserContext(), counters.Visits); err != nil {
		slog.Warn("failed to count visit", "error", err)
	}
	c.Type("html", "utf-8")
	return c.Send(indexPage)
}
