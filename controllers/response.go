package controllers

import (
	"crm-app/types"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func sendData(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func sendPage(ctx *fiber.Ctx, message string, data interface{}, total int64) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": message, "data": data, "total": total})
}

// sendError maps the typed errors to a status code. Store messages are
// passed through unchanged.
func sendError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	body := fiber.Map{"success": false, "message": err.Error()}

	var ves types.ValidationErrors
	switch {
	case errors.As(err, &ves):
		status = fiber.StatusBadRequest
		fields := fiber.Map{}
		for _, ve := range ves {
			fields[ve.Field] = ve.Message
		}
		body["errors"] = fields
	case types.IsValidation(err):
		status = fiber.StatusBadRequest
	case types.IsNotFound(err):
		status = fiber.StatusNotFound
	}
	return ctx.Status(status).JSON(body)
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

func paramID(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	id, err := types.ParseSnowflakeID(ctx.Params(name))
	if err != nil {
		return 0, types.NewValidationError(name, "invalid id")
	}
	return id, nil
}

func queryID(ctx *fiber.Ctx, name string) (*types.SnowflakeID, error) {
	id, err := types.ParseOptionalID(ctx.Query(name))
	if err != nil {
		return nil, types.NewValidationError(name, "invalid id")
	}
	return id, nil
}

func queryIDs(ctx *fiber.Ctx, name string) ([]types.SnowflakeID, error) {
	var ids []types.SnowflakeID
	for _, raw := range strings.Split(ctx.Query(name), ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := types.ParseSnowflakeID(raw)
		if err != nil {
			return nil, types.NewValidationError(name, "invalid id %q", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func queryMonth(ctx *fiber.Ctx, name string) (*types.YearMonth, error) {
	ym, err := types.ParseOptionalYearMonth(ctx.Query(name))
	if err != nil {
		return nil, types.NewValidationError(name, "%s", err.Error())
	}
	return ym, nil
}

// currentUserID is the user_id the auth middleware resolved, if any.
func currentUserID(ctx *fiber.Ctx) *types.SnowflakeID {
	id, ok := ctx.Locals("userID").(types.SnowflakeID)
	if !ok || id.IsZero() {
		return nil
	}
	return &id
}
