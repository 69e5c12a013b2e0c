package controller

import (
	"github.com/gofiber/fiber/v2"

	"docsearch-be/internal/dto"
	"docsearch-be/internal/service"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type systemController struct {
	consumer service.IConsumerService
}

func NewSystemController(consumer service.IConsumerService) ISystemController {
	return &systemController{consumer: consumer}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/stats", c.Stats)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"ok": true})
}

func (c *systemController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.StatsResponse{
		Ok:    true,
		Stats: c.consumer.Snapshot(),
	})
}
