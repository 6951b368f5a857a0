package controller

import (
	"mediscribe-be/internal/dto"
	"mediscribe-be/internal/pkg/serverutils"
	"mediscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITranscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
}

type transcriptionController struct {
	transcriptionService service.ITranscriptionService
}

func NewTranscriptionController(transcriptionService service.ITranscriptionService) ITranscriptionController {
	return &transcriptionController{
		transcriptionService: transcriptionService,
	}
}

// RegisterRoutes mounts onto the authenticated consultation group.
func (c *transcriptionController) RegisterRoutes(r fiber.Router) {
	r.Post("transcribe", c.Transcribe)
}

func (c *transcriptionController) Transcribe(ctx *fiber.Ctx) error {
	// 1. Caller identity comes from the verified token, never from the body
	userIdStr, _ := ctx.Locals("user_id").(string)
	doctorId, err := uuid.Parse(userIdStr)
	if err != nil {
		return serverutils.NewUnauthorized("INVALID_TOKEN", "token subject is not a user id")
	}

	var req dto.TranscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("BAD_REQUEST", "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// 2. Run the pipeline and return its payload verbatim
	res, err := c.transcriptionService.Run(ctx.Context(), doctorId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
