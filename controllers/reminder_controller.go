package controllers

import (
	"crm-app/services"
	"crm-app/types"

	"github.com/gofiber/fiber/v2"
)

type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// SendDue mails the digests for ?date=YYYY-MM-DD, today when omitted.
func (c *ReminderController) SendDue(ctx *fiber.Ctx) error {
	day := types.Today()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := types.ParseDate(raw)
		if err != nil {
			return sendError(ctx, types.NewValidationError("date", "%s", err.Error()))
		}
		day = parsed
	}

	result, err := c.reminders.SendDue(ctx.UserContext(), day)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Reminders sent", result)
}
