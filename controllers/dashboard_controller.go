package controllers

import (
	"crm-app/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	var q services.DashboardQuery
	var err error
	if q.UserID, err = queryID(ctx, "user_id"); err != nil {
		return sendError(ctx, err)
	}
	if q.CustomerID, err = queryID(ctx, "customer_id"); err != nil {
		return sendError(ctx, err)
	}

	view, err := c.dashboard.View(ctx.UserContext(), q)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Dashboard loaded", view)
}
