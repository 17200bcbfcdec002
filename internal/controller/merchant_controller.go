package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/serverutils"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/service"
)

// IMerchantController serves the merchant-side workflow surface: browsing
// eligible cases and submitting cancellation or extension applications.
type IMerchantController interface {
	RegisterRoutes(r fiber.Router)
	ListCancelableCases(ctx *fiber.Ctx) error
	ListExtensionEligibleCases(ctx *fiber.Ctx) error
	SubmitCancellation(ctx *fiber.Ctx) error
	SubmitExtension(ctx *fiber.Ctx) error
}

type merchantController struct {
	applicationService service.IApplicationService
	eligibilityService service.IEligibilityService
}

func NewMerchantController(
	applicationService service.IApplicationService,
	eligibilityService service.IEligibilityService,
) IMerchantController {
	return &merchantController{
		applicationService: applicationService,
		eligibilityService: eligibilityService,
	}
}

func (c *merchantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/merchant/v1")
	h.Use(serverutils.MerchantJwtMiddleware)
	h.Get("cancellations/cases", c.ListCancelableCases)
	h.Post("cancellations", c.SubmitCancellation)
	h.Get("extensions/cases", c.ListExtensionEligibleCases)
	h.Post("extensions", c.SubmitExtension)
}

func (c *merchantController) ListCancelableCases(ctx *fiber.Ctx) error {
	merchantID := ctx.Locals("merchant_id").(string)

	res, err := c.eligibilityService.ListCancelableCases(ctx.Context(), merchantID, time.Now())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list cancelable cases", res))
}

func (c *merchantController) ListExtensionEligibleCases(ctx *fiber.Ctx) error {
	merchantID := ctx.Locals("merchant_id").(string)

	res, err := c.eligibilityService.ListExtensionEligibleCases(ctx.Context(), merchantID, time.Now())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list extension-eligible cases", res))
}

func (c *merchantController) SubmitCancellation(ctx *fiber.Ctx) error {
	merchantID := ctx.Locals("merchant_id").(string)

	var req dto.SubmitCancellationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.applicationService.SubmitCancellation(ctx.Context(), merchantID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit cancellation application", res))
}

func (c *merchantController) SubmitExtension(ctx *fiber.Ctx) error {
	merchantID := ctx.Locals("merchant_id").(string)

	var req dto.SubmitExtensionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.applicationService.SubmitExtension(ctx.Context(), merchantID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit extension application", res))
}
