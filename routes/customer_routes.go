package routes

import (
	"crm-app/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupCustomerRoutes(router fiber.Router, customerController *controllers.CustomerController) {
	api := router.Group("/customers")

	api.Get("/", customerController.GetAllCustomers)
	api.Post("/", customerController.CreateCustomer)
	api.Get("/export", customerController.ExportCustomers)
	api.Get("/:id", customerController.GetCustomerByID)
	api.Put("/:id/status", customerController.UpdateStatus)
	api.Get("/:id/inquiries", customerController.GetCustomerInquiries)
}
