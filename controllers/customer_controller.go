package controllers

import (
	"bytes"
	"crm-app/services"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type CustomerController struct {
	customers *services.CustomerService
	inquiries *services.InquiryService
	status    *services.StatusService
}

func NewCustomerController(customers *services.CustomerService, inquiries *services.InquiryService, status *services.StatusService) *CustomerController {
	return &CustomerController{customers: customers, inquiries: inquiries, status: status}
}

func (c *CustomerController) GetAllCustomers(ctx *fiber.Ctx) error {
	ownerID, err := queryID(ctx, "owner_id")
	if err != nil {
		return sendError(ctx, err)
	}
	month, err := queryMonth(ctx, "month")
	if err != nil {
		return sendError(ctx, err)
	}

	page, err := c.customers.List(ctx.UserContext(), services.CustomerQuery{
		OwnerID: ownerID,
		Keyword: ctx.Query("keyword"),
		Month:   month,
		Page:    ctx.QueryInt("page", 0),
		Size:    ctx.QueryInt("size", 0),
	})
	if err != nil {
		return sendError(ctx, err)
	}
	return sendPage(ctx, "Customers found", page.Rows, page.Total)
}

func (c *CustomerController) GetCustomerByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	customer, err := c.customers.Get(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Customer found", customer)
}

func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var input services.NewCustomer
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	if input.UserID == nil {
		input.UserID = currentUserID(ctx)
	}
	customer, err := c.customers.Create(ctx.UserContext(), input)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusCreated, "Customer created successfully", customer)
}

func (c *CustomerController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	customer, err := c.status.SetCustomerStatus(ctx.UserContext(), id, input.Status)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Customer status updated successfully", customer)
}

func (c *CustomerController) GetCustomerInquiries(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	inquiries, err := c.inquiries.ListByCustomer(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Inquiries found", inquiries)
}

func (c *CustomerController) ExportCustomers(ctx *fiber.Ctx) error {
	ownerIDs, err := queryIDs(ctx, "owner_ids")
	if err != nil {
		return sendError(ctx, err)
	}

	var buf bytes.Buffer
	if err := c.customers.Export(ctx.UserContext(), &buf, ownerIDs); err != nil {
		return sendError(ctx, err)
	}

	filename := fmt.Sprintf("customers_%s.xlsx", time.Now().Format("20060102"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}
