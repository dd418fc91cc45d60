package routes

import (
	"crm-app/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(router fiber.Router, dashboardController *controllers.DashboardController) {
	router.Get("/dashboard", dashboardController.GetDashboard)
}

func SetupReminderRoutes(router fiber.Router, reminderController *controllers.ReminderController) {
	router.Post("/reminders/send", reminderController.SendDue)
}
