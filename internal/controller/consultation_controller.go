package controller

import (
	"mediscribe-be/internal/dto"
	"mediscribe-be/internal/pkg/serverutils"
	"mediscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConsultationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ListPublished(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
}

type consultationController struct {
	consultationService service.IConsultationService
}

func NewConsultationController(consultationService service.IConsultationService) IConsultationController {
	return &consultationController{
		consultationService: consultationService,
	}
}

// RegisterRoutes mounts onto the authenticated consultation group.
// "published" must register before ":id" so it never matches as an id.
func (c *consultationController) RegisterRoutes(r fiber.Router) {
	r.Get("", c.List)
	r.Get("published", c.ListPublished)
	r.Get(":id", c.Show)
	r.Put(":id/publish", c.Publish)
}

func callerId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	id, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, serverutils.NewUnauthorized("INVALID_TOKEN", "token subject is not a user id")
	}
	return id, nil
}

func (c *consultationController) List(ctx *fiber.Ctx) error {
	doctorId, err := callerId(ctx)
	if err != nil {
		return err
	}

	res, err := c.consultationService.ListForDoctor(ctx.Context(), doctorId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list consultations", res))
}

func (c *consultationController) ListPublished(ctx *fiber.Ctx) error {
	patientId, err := callerId(ctx)
	if err != nil {
		return err
	}

	res, err := c.consultationService.ListPublishedForPatient(ctx.Context(), patientId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list published consultations", res))
}

func (c *consultationController) Show(ctx *fiber.Ctx) error {
	doctorId, err := callerId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("BAD_REQUEST", "invalid consultation id")
	}

	res, err := c.consultationService.Show(ctx.Context(), doctorId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show consultation", res))
}

func (c *consultationController) Publish(ctx *fiber.Ctx) error {
	doctorId, err := callerId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("BAD_REQUEST", "invalid consultation id")
	}

	var req dto.PublishConsultationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("BAD_REQUEST", "invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.consultationService.Publish(ctx.Context(), doctorId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update consultation visibility", res))
}
