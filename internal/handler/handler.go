package handler

import (
	"github.com/gofiber/fiber/v2"

	"foxbuy-watchdog/internal/domain"
	"foxbuy-watchdog/internal/service"
)

type Handlers struct {
	Watchdog *WatchdogHandler
	AdEvent  *AdEventHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Watchdog: NewWatchdogHandler(services.Watchdog),
		AdEvent:  NewAdEventHandler(services.Watchdog),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", params.Page); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", params.PageSize); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
