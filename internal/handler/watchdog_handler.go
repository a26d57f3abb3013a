package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"foxbuy-watchdog/internal/domain"
	"foxbuy-watchdog/internal/middleware"
	"foxbuy-watchdog/internal/service/watchdog"
)

type WatchdogHandler struct {
	watchdogService watchdog.Service
}

func NewWatchdogHandler(watchdogService watchdog.Service) *WatchdogHandler {
	return &WatchdogHandler{watchdogService: watchdogService}
}

// Create registers a watchdog for the current user. Domain errors are mapped
// to responses by middleware.ErrorHandler.
func (h *WatchdogHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateWatchdogInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	w, err := h.watchdogService.Register(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  w.ConfirmationMessage(),
		"watchdog": w,
	})
}

func (h *WatchdogHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	result, err := h.watchdogService.ListByOwner(c.Context(), userID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *WatchdogHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid watchdog ID")
	}

	if err := h.watchdogService.Delete(c.Context(), userID, id); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *WatchdogHandler) ListNotifications(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid watchdog ID")
	}

	records, err := h.watchdogService.ListNotifications(c.Context(), id)
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.NotificationRecord{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": records})
}
