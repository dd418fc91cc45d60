package routes

import (
	"crm-app/controllers"
	"crm-app/services"

	"github.com/gofiber/fiber/v2"
)

func SetupImportRoutes(router fiber.Router, importController *controllers.ImportController) {
	api := router.Group("/imports")

	api.Post("/customers", importController.ImportFile(services.ImportCustomers))
	api.Post("/inquiries", importController.ImportFile(services.ImportInquiries))
	api.Post("/customers-with-inquiries", importController.ImportFile(services.ImportCustomersWithInquiries))
	api.Get("/:kind/template", importController.GetTemplate)
}
