package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"foxbuy-watchdog/internal/domain"
	"foxbuy-watchdog/internal/middleware"
	"foxbuy-watchdog/internal/service/watchdog"
)

// AdEventHandler is the synchronous intake for the ad service. The same
// events may also arrive over NATS.
type AdEventHandler struct {
	watchdogService watchdog.Service
}

func NewAdEventHandler(watchdogService watchdog.Service) *AdEventHandler {
	return &AdEventHandler{watchdogService: watchdogService}
}

func (h *AdEventHandler) Ingest(c *fiber.Ctx) error {
	var event domain.AdEvent
	if err := c.BodyParser(&event); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.watchdogService.OnAdEvent(c.Context(), event); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "processed"})
}

type ownerDowngradeInput struct {
	UserID uuid.UUID `json:"user_id"`
}

// OwnerDowngraded lets the user service deactivate a former VIP's watchdogs
// right away instead of waiting for the next matching ad.
func (h *AdEventHandler) OwnerDowngraded(c *fiber.Ctx) error {
	var input ownerDowngradeInput
	if err := c.BodyParser(&input); err != nil || input.UserID == uuid.Nil {
		return middleware.BadRequest("Invalid request body")
	}

	n, err := h.watchdogService.DeactivateOwner(c.Context(), input.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deactivated": n})
}
