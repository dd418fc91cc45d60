package routes

import (
	"crm-app/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(router fiber.Router, userController *controllers.UserController) {
	api := router.Group("/users")

	api.Get("/", userController.GetAllUsers)
	api.Post("/", userController.CreateUser)
	api.Get("/:id", userController.GetUserByID)
	api.Put("/:id/role", userController.UpdateRole)
	api.Get("/:id/customers", userController.GetUserCustomers)
}
