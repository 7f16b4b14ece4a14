package controllers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khankhulgun/svgcanvas/config"
	"github.com/khankhulgun/svgcanvas/counters"
	"github.com/khankhulgun/svgcanvas/models"
	"github.com/khankhulgun/svgcanvas/presets"
	"github.com/khankhulgun/svgcanvas/raster"
)

const svgMimeType = "image/svg+xml"

// Convert rasterizes an uploaded SVG and answers with the PNG as an
// attachment.
func Convert(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Please upload an SVG file first.",
		})
	}
	if !isSVG(file) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Please upload a valid SVG file.",
		})
	}

	markup, err := readUpload(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not read the uploaded file",
			"error":   err.Error(),
		})
	}

	canvas := config.Config.Canvas
	width, err := formInt(c, "width", canvas.DefaultWidth)
	if err != nil {
		return badRequest(c, "Width must be a whole number", err)
	}
	height, err := formInt(c, "height", canvas.DefaultHeight)
	if err != nil {
		return badRequest(c, "Height must be a whole number", err)
	}
	width, height, err = presets.Resolve(c.UserContext(), presets.Fetch, c.FormValue("preset"), width, height)
	if err != nil {
		if errors.Is(err, presets.ErrUnknownPreset) {
			return badRequest(c, "Unknown format preset", err)
		}
		slog.Error("preset lookup failed", "preset", c.FormValue("preset"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error resolving format preset",
		})
	}

	req := models.ConversionRequest{
		SVGMarkup:       markup,
		TargetWidth:     width,
		TargetHeight:    height,
		BackgroundColor: c.FormValue("background", canvas.DefaultBackground),
		Recolor:         raster.RecolorOverride(c.FormValue("color")),
		SourceName:      file.Filename,
	}

	result, err := raster.Rasterize(c.UserContext(), req)
	switch {
	case errors.Is(err, raster.ErrEmptyInput):
		return badRequest(c, "The SVG file is empty", err)
	case errors.Is(err, raster.ErrInvalidInput):
		return badRequest(c, "Invalid conversion settings", err)
	case errors.Is(err, raster.ErrDecode):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": "The SVG could not be rendered",
			"error":   err.Error(),
		})
	case err != nil:
		slog.Error("conversion failed", "file", file.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Conversion failed",
		})
	}

	if _, err := counters.Hit(c.UserContext(), counters.Conversions); err != nil {
		slog.Warn("failed to count conversion", "error", err)
	}
	slog.Info("svg converted", "file", file.Filename, "output", result.Filename, "bytes", len(result.PNG))

	c.Attachment(result.Filename)
	return c.Send(result.PNG)
}

// isSVG accepts the SVG media type, or a .svg name when the client sent a
// generic type.
func isSVG(file *multipart.FileHeader) bool {
	mediaType, _, err := mime.ParseMediaType(file.Header.Get(fiber.HeaderContentType))
	if err == nil && mediaType == svgMimeType {
		return true
	}
	generic := err != nil || mediaType == "" || mediaType == fiber.MIMEOctetStream
	return generic && strings.EqualFold(filepath.Ext(file.Filename), ".svg")
}

func readUpload(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}
