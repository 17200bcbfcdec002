package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/serverutils"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/service"
)

// IAdminController serves the back-office approval queues and decisions.
type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListCancellations(ctx *fiber.Ctx) error
	ListExtensions(ctx *fiber.Ctx) error
	ApproveCancellation(ctx *fiber.Ctx) error
	RejectCancellation(ctx *fiber.Ctx) error
	ApproveExtension(ctx *fiber.Ctx) error
	RejectExtension(ctx *fiber.Ctx) error
}

type adminController struct {
	workflowService service.IWorkflowService
}

func NewAdminController(workflowService service.IWorkflowService) IAdminController {
	return &adminController{
		workflowService: workflowService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.AdminJwtMiddleware)
	h.Get("cancellations", c.ListCancellations)
	h.Get("extensions", c.ListExtensions)
	h.Post("cancellations/:id/approve", c.ApproveCancellation)
	h.Post("cancellations/:id/reject", c.RejectCancellation)
	h.Post("extensions/:id/approve", c.ApproveExtension)
	h.Post("extensions/:id/reject", c.RejectExtension)
}

func (c *adminController) ListCancellations(ctx *fiber.Ctx) error {
	status := ctx.Query("status", "pending")
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 20)

	res, err := c.workflowService.ListCancellations(ctx.Context(), status, page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list cancellation applications", res))
}

func (c *adminController) ListExtensions(ctx *fiber.Ctx) error {
	status := ctx.Query("status", "pending")
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 20)

	res, err := c.workflowService.ListExtensions(ctx.Context(), status, page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list extension applications", res))
}

func (c *adminController) ApproveCancellation(ctx *fiber.Ctx) error {
	approver := ctx.Locals("approver").(string)

	res, err := c.workflowService.ApproveCancellation(ctx.Context(), ctx.Params("id"), approver)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Cancellation approved", res))
}

func (c *adminController) RejectCancellation(ctx *fiber.Ctx) error {
	approver := ctx.Locals("approver").(string)

	var req dto.RejectDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.RejectCancellation(ctx.Context(), ctx.Params("id"), approver, req.Reason)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Cancellation rejected", res))
}

func (c *adminController) ApproveExtension(ctx *fiber.Ctx) error {
	approver := ctx.Locals("approver").(string)

	res, err := c.workflowService.ApproveExtension(ctx.Context(), ctx.Params("id"), approver)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Extension approved", res))
}

func (c *adminController) RejectExtension(ctx *fiber.Ctx) error {
	approver := ctx.Locals("approver").(string)

	var req dto.RejectDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.RejectExtension(ctx.Context(), ctx.Params("id"), approver, req.Reason)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Extension rejected", res))
}
