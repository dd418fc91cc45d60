package controllers

import (
	"bytes"
	"crm-app/services"
	"crm-app/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ImportController struct {
	imports *services.ImportService
}

func NewImportController(imports *services.ImportService) *ImportController {
	return &ImportController{imports: imports}
}

// ImportFile takes a multipart "file" (.csv or .xlsx) and imports it as the
// kind given by the route.
func (c *ImportController) ImportFile(kind services.ImportKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		file, err := ctx.FormFile("file")
		if err != nil {
			return badRequest(ctx, "File is required")
		}

		content, err := file.Open()
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to open file",
			})
		}
		defer content.Close()

		sheet, err := utils.ReadSheet(file.Filename, content)
		if err != nil {
			if errors.Is(err, utils.ErrEmptySheet) {
				return badRequest(ctx, "File must contain header and at least one data row")
			}
			return badRequest(ctx, err.Error())
		}

		result, err := c.imports.Import(ctx.UserContext(), kind, sheet)
		if err != nil {
			return sendError(ctx, err)
		}
		message := fmt.Sprintf("Imported %d of %d rows", result.SuccessCount, result.TotalRows)
		return sendData(ctx, fiber.StatusOK, message, result)
	}
}

// GetTemplate returns the header-only CSV for an import kind.
func (c *ImportController) GetTemplate(ctx *fiber.Ctx) error {
	kind, err := services.ParseImportKind(ctx.Params("kind"))
	if err != nil {
		return sendError(ctx, err)
	}

	var buf bytes.Buffer
	if err := utils.WriteCSVTemplate(&buf, services.TemplateColumns(kind)); err != nil {
		return sendError(ctx, err)
	}
	ctx.Set("Content-Type", "text/csv; charset=utf-8")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_template.csv"`, kind))
	return ctx.Send(buf.Bytes())
}
