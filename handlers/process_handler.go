package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/1Garv23/share-smote/engine"
	"github.com/1Garv23/share-smote/pkg/types"
)

// ProcessHandler relays authenticated processing jobs to the augmentation
// engine. The multipart body passes through untouched in both directions;
// the server never opens the archive.
type ProcessHandler struct {
	Engine *engine.Client
}

func NewProcessHandler(eng *engine.Client) *ProcessHandler {
	return &ProcessHandler{Engine: eng}
}

// Process handles POST /api/process.
func (h *ProcessHandler) Process(c *fiber.Ctx) error {
	contentType := c.Get("Content-Type")

	result, err := h.Engine.Process(c.Context(), contentType, c.Body())
	if err != nil {
		log.Println("Error calling augmentation engine:", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Error: "Augmentation service is unavailable",
		})
	}

	if result.ContentType != "" {
		c.Set("Content-Type", result.ContentType)
	}
	if result.ContentDisposition != "" {
		c.Set("Content-Disposition", result.ContentDisposition)
	}
	return c.Status(result.Status).Send(result.Body)
}
