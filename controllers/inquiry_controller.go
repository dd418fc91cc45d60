package controllers

import (
	"crm-app/services"
	"crm-app/types"

	"github.com/gofiber/fiber/v2"
)

type InquiryController struct {
	inquiries *services.InquiryService
	status    *services.StatusService
	followUps *services.FollowUpService
}

func NewInquiryController(inquiries *services.InquiryService, status *services.StatusService, followUps *services.FollowUpService) *InquiryController {
	return &InquiryController{inquiries: inquiries, status: status, followUps: followUps}
}

func (c *InquiryController) GetAllInquiries(ctx *fiber.Ctx) error {
	q := services.InquiryQuery{
		Keyword: ctx.Query("keyword"),
		Page:    ctx.QueryInt("page", 0),
		Size:    ctx.QueryInt("size", 0),
	}
	var err error
	if q.CustomerID, err = queryID(ctx, "customer_id"); err != nil {
		return sendError(ctx, err)
	}
	if q.StatusID, err = queryID(ctx, "status_id"); err != nil {
		return sendError(ctx, err)
	}
	if q.FromMonth, err = queryMonth(ctx, "from_month"); err != nil {
		return sendError(ctx, err)
	}
	if q.ToMonth, err = queryMonth(ctx, "to_month"); err != nil {
		return sendError(ctx, err)
	}

	page, err := c.inquiries.List(ctx.UserContext(), q)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendPage(ctx, "Inquiries found", page.Rows, page.Total)
}

func (c *InquiryController) GetInquiryByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	inquiry, err := c.inquiries.Get(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Inquiry found", inquiry)
}

func (c *InquiryController) CreateInquiry(ctx *fiber.Ctx) error {
	var input services.NewInquiry
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	inquiry, err := c.inquiries.Create(ctx.UserContext(), input)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusCreated, "Inquiry created successfully", inquiry)
}

// UpdateStatus answers with the inquiry re-read after the write, so the
// client takes name and color from here rather than from its own copy.
func (c *InquiryController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	var input struct {
		StatusID types.SnowflakeID `json:"status_id"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	if input.StatusID.IsZero() {
		return sendError(ctx, types.NewValidationError("status_id", "is required"))
	}

	inquiry, err := c.status.SetStatus(ctx.UserContext(), id, input.StatusID)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Inquiry status updated successfully", inquiry)
}

func (c *InquiryController) GetFollowUps(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}

	list := c.followUps.ListForInquiry
	if ctx.Query("order") == "desc" {
		list = c.followUps.ListForInquiryDesc
	}
	followUps, err := list(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Follow-ups found", followUps)
}

func (c *InquiryController) AddFollowUp(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return sendError(ctx, err)
	}
	var input services.NewFollowUp
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, err.Error())
	}
	input.InquiryID = id
	if input.UserID == nil {
		input.UserID = currentUserID(ctx)
	}

	followUp, err := c.followUps.AddFollowUp(ctx.UserContext(), input)
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusCreated, "Follow-up added successfully", followUp)
}

func (c *InquiryController) GetStatuses(ctx *fiber.Ctx) error {
	statuses, err := c.status.ListStatuses(ctx.UserContext())
	if err != nil {
		return sendError(ctx, err)
	}
	return sendData(ctx, fiber.StatusOK, "Inquiry statuses found", statuses)
}
