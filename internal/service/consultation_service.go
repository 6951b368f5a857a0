package service

import (
	"context"
	"encoding/json"
	"time"

	"mediscribe-be/internal/dto"
	"mediscribe-be/internal/entity"
	"mediscribe-be/internal/pkg/logger"
	"mediscribe-be/internal/pkg/mailer"
	"mediscribe-be/internal/pkg/serverutils"
	"mediscribe-be/internal/repository/specification"
	"mediscribe-be/internal/repository/unitofwork"
	"mediscribe-be/pkg/events"

	"github.com/google/uuid"
)

type IConsultationService interface {
	ListForDoctor(ctx context.Context, doctorId uuid.UUID) ([]*dto.ShowConsultationResponse, error)
	ListPublishedForPatient(ctx context.Context, patientId uuid.UUID) ([]*dto.ShowConsultationResponse, error)
	Show(ctx context.Context, doctorId uuid.UUID, id uuid.UUID) (*dto.ShowConsultationResponse, error)
	Publish(ctx context.Context, doctorId uuid.UUID, req *dto.PublishConsultationRequest) (*dto.PublishConsultationResponse, error)
}

type consultationService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	emailService     mailer.IEmailService
	logger           logger.ILogger
}

func NewConsultationService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	emailService mailer.IEmailService,
	sysLogger logger.ILogger,
) IConsultationService {
	return &consultationService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		emailService:     emailService,
		logger:           sysLogger,
	}
}

func (s *consultationService) ListForDoctor(ctx context.Context, doctorId uuid.UUID) ([]*dto.ShowConsultationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	consultations, err := uow.ConsultationRepository().FindAll(ctx,
		specification.OwnedByDoctor{DoctorID: doctorId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewInternal("LOOKUP_FAILED", "failed to list consultations", err)
	}
	return toShowResponses(consultations), nil
}

func (s *consultationService) ListPublishedForPatient(ctx context.Context, patientId uuid.UUID) ([]*dto.ShowConsultationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	consultations, err := uow.ConsultationRepository().FindAll(ctx,
		specification.ForPatient{PatientID: patientId},
		specification.Published{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewInternal("LOOKUP_FAILED", "failed to list consultations", err)
	}
	return toShowResponses(consultations), nil
}

func (s *consultationService) Show(ctx context.Context, doctorId uuid.UUID, id uuid.UUID) (*dto.ShowConsultationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	consultation, err := uow.ConsultationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, serverutils.NewInternal("LOOKUP_FAILED", "failed to load consultation", err)
	}
	if consultation == nil {
		return nil, serverutils.NewNotFound("CONSULTATION_NOT_FOUND", "consultation not found")
	}
	if consultation.DoctorId != doctorId {
		return nil, serverutils.NewUnauthorized("OWNERSHIP_MISMATCH", "you do not own this consultation")
	}
	return toShowResponse(consultation), nil
}

// Publish flips patient-facing visibility. Publishing notifies the
// patient by email; a mailer failure is logged, never surfaced.
func (s *consultationService) Publish(ctx context.Context, doctorId uuid.UUID, req *dto.PublishConsultationRequest) (*dto.PublishConsultationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership check and flag write share one transaction so a
	// concurrent reassignment cannot slip between them.
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.NewInternal("PERSIST_FAILED", "failed to start transaction", err)
	}
	defer uow.Rollback()

	consultation, err := uow.ConsultationRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, serverutils.NewInternal("LOOKUP_FAILED", "failed to load consultation", err)
	}
	if consultation == nil {
		return nil, serverutils.NewNotFound("CONSULTATION_NOT_FOUND", "consultation not found")
	}
	if consultation.DoctorId != doctorId {
		return nil, serverutils.NewUnauthorized("OWNERSHIP_MISMATCH", "you do not own this consultation")
	}

	published := *req.Published
	if err := uow.ConsultationRepository().SetPublished(ctx, req.Id, published); err != nil {
		return nil, serverutils.NewInternal("PERSIST_FAILED", "failed to update consultation", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.NewInternal("PERSIST_FAILED", "failed to update consultation", err)
	}

	s.publishVisibilityChanged(ctx, req.Id, doctorId, published)

	if published && consultation.PatientEmail != "" && s.emailService != nil {
		if err := s.emailService.SendSummaryPublished(consultation.PatientEmail, consultation.CreatedAt.Format("2 January 2006")); err != nil {
			s.logger.Warn("consultation", "Failed to send publish notification", map[string]interface{}{
				"consultation_id": req.Id,
				"error":           err.Error(),
			})
		}
	}

	return &dto.PublishConsultationResponse{
		Id:                  req.Id,
		PublishedForPatient: published,
	}, nil
}

func (s *consultationService) publishVisibilityChanged(ctx context.Context, consultationId, doctorId uuid.UUID, published bool) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(events.BaseEvent{
		Type: events.TypeConsultationPublished,
		Data: dto.ConsultationPublishedMessage{
			ConsultationId: consultationId,
			DoctorId:       doctorId,
			Published:      published,
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	// Visibility already changed; a lost event only costs an audit entry.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("consultation", "Failed to publish visibility event", map[string]interface{}{
			"consultation_id": consultationId,
			"error":           err.Error(),
		})
	}
}

func toShowResponse(c *entity.Consultation) *dto.ShowConsultationResponse {
	return &dto.ShowConsultationResponse{
		Id:                  c.Id,
		PatientId:           c.PatientId,
		AudioPath:           c.AudioPath,
		Transcript:          c.Transcript,
		SummarySimple:       c.SummarySimple,
		SummaryDetailed:     c.SummaryDetailed,
		SummaryTechnical:    c.SummaryTechnical,
		PublishedForPatient: c.PublishedForPatient,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func toShowResponses(consultations []*entity.Consultation) []*dto.ShowConsultationResponse {
	responses := make([]*dto.ShowConsultationResponse, len(consultations))
	for i, c := range consultations {
		responses[i] = toShowResponse(c)
	}
	return responses
}
