package controllers

import (
	"crm-app/services"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	users     *services.UserService
	dashboard *services.DashboardService
}

func NewUserController(users *services.UserService, dashboard *services.DashboardService) *UserController {
	return &UserController{users: users, dashboard: dashboard}
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.users.GetAllUsers(ctx.UserContext())
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Users found", users)
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	user, err := c.users.GetUserByID(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "User found", user)
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var input services.NewUser
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	user, err := c.users.CreateUser(ctx.UserContext(), input)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusCreated, "User created successfully", user)
}

func (c *UserController) UpdateRole(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	var input struct {
		Role string `json:"role"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	user, err := c.users.UpdateRole(ctx.UserContext(), id, input.Role)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "User role updated successfully", user)
}

// GetUserCustomers returns the user's customers, each with its inquiries.
func (c *UserController) GetUserCustomers(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	customers, err := c.dashboard.UserCustomers(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Customers found", customers)
}
