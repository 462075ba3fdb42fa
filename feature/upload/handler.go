package upload

import (
	"net/http"

	"market-ingest/core/logger"
	"market-ingest/feature/upload/schema"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for uploads.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the upload routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/upload/:apiKey", h.HandleUpload)
}

// HandleUpload accepts one market data payload from a trusted source.
// @Summary Upload Market Data
// @Description Accept listings and sales for one (world, item) key from a trusted client.
// @Tags upload
// @Accept json
// @Produce plain
// @Param apiKey path string true "Source API key"
// @Success 200 {string} string "Success"
// @Failure 400 "Malformed body or markup content"
// @Failure 403 "Unknown API key"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /upload/{apiKey} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var params schema.UploadParameters
	if err := c.BodyParser(&params); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	resp, err := h.service.ProcessUpload(c.Context(), c.Params("apiKey"), &params)
	if err != nil {
		l.Error("Upload processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if resp.Code == http.StatusOK {
		return c.Status(fiber.StatusOK).SendString(resp.Message)
	}
	return c.SendStatus(resp.Code)
}
