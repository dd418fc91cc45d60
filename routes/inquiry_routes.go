package routes

import (
	"crm-app/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupInquiryRoutes(router fiber.Router, inquiryController *controllers.InquiryController) {
	api := router.Group("/inquiries")

	api.Get("/", inquiryController.GetAllInquiries)
	api.Post("/", inquiryController.CreateInquiry)
	api.Get("/:id", inquiryController.GetInquiryByID)
	api.Put("/:id/status", inquiryController.UpdateStatus)
	api.Get("/:id/follow-ups", inquiryController.GetFollowUps)
	api.Post("/:id/follow-ups", inquiryController.AddFollowUp)

	router.Get("/inquiry-statuses", inquiryController.GetStatuses)
}
