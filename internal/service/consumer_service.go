package service

import (
	"context"
	"encoding/json"

	"mediscribe-be/internal/dto"
	"mediscribe-be/internal/pkg/logger"
	"mediscribe-be/internal/repository/specification"
	"mediscribe-be/internal/repository/unitofwork"
	"mediscribe-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService records consultation lifecycle events to the audit
// log. It runs in-process on the same gochannel bus the services
// publish to, so completions are observable even when the HTTP
// response is lost.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal event envelope", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would loop forever on Nack
		return
	}

	switch envelope.Type {
	case events.TypeConsultationTranscribed:
		cs.handleTranscribed(ctx, msg, envelope.Data)
	case events.TypeConsultationPublished:
		cs.handlePublished(ctx, msg, envelope.Data)
	default:
		cs.logger.Warn("consumer", "Skipping event of unknown type", map[string]interface{}{
			"type": envelope.Type,
		})
		msg.Ack()
	}
}

func (cs *consumerService) handleTranscribed(ctx context.Context, msg *message.Message, data json.RawMessage) {
	var payload dto.ConsultationTranscribedMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal transcribed payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	consultation, err := uow.ConsultationRepository().FindOne(ctx, specification.ByID{ID: payload.ConsultationId})
	if err != nil {
		cs.logger.Error("consumer", "Failed to load transcribed consultation", map[string]interface{}{
			"consultation_id": payload.ConsultationId,
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}
	if consultation == nil {
		// Deleted between transcription and consumption. Nothing to record.
		msg.Ack()
		return
	}

	cs.logger.Info("consumer", "Consultation transcription completed", map[string]interface{}{
		"consultation_id": payload.ConsultationId,
		"doctor_id":       payload.DoctorId,
		"patient_id":      consultation.PatientId,
		"duration_ms":     payload.DurationMs,
		"published":       consultation.PublishedForPatient,
	})
	msg.Ack()
}

func (cs *consumerService) handlePublished(ctx context.Context, msg *message.Message, data json.RawMessage) {
	var payload dto.ConsultationPublishedMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal published payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	consultation, err := uow.ConsultationRepository().FindOne(ctx, specification.ByID{ID: payload.ConsultationId})
	if err != nil {
		cs.logger.Error("consumer", "Failed to load published consultation", map[string]interface{}{
			"consultation_id": payload.ConsultationId,
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}
	if consultation == nil {
		msg.Ack()
		return
	}

	cs.logger.Info("consumer", "Consultation visibility changed", map[string]interface{}{
		"consultation_id": payload.ConsultationId,
		"doctor_id":       payload.DoctorId,
		"patient_id":      consultation.PatientId,
		"published":       payload.Published,
	})
	msg.Ack()
}
