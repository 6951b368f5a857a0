package service

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"mediscribe-be/internal/config"
	"mediscribe-be/internal/constant"
	"mediscribe-be/internal/dto"
	"mediscribe-be/internal/pkg/logger"
	"mediscribe-be/internal/pkg/serverutils"
	"mediscribe-be/internal/repository/contract"
	"mediscribe-be/internal/repository/specification"
	"mediscribe-be/internal/repository/unitofwork"
	"mediscribe-be/pkg/events"
	"mediscribe-be/pkg/llm"
	"mediscribe-be/pkg/stt"
	"mediscribe-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// summaryTemperature biases generation toward literal, consistent
// output. Outputs are still not byte-stable across runs.
const summaryTemperature = 0.3

// inFlightTTL bounds how long a consultation stays locked if a run
// dies without cleaning up.
const inFlightTTL = 10 * time.Minute

type ITranscriptionService interface {
	Run(ctx context.Context, doctorId uuid.UUID, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error)
}

// transcriptionService drives the pipeline as a single forward pass:
// ownership guard, audio fetch, transcription, summarization fan-out,
// one persistence write. Any failure is terminal for the invocation;
// nothing is retried and nothing is written before the final step.
type transcriptionService struct {
	uowFactory       unitofwork.RepositoryFactory
	objectStore      storage.ObjectStore
	sttProvider      stt.Provider
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
	logger           logger.ILogger
	audioBucket      string
	summaryMode      string
	inFlight         *cache.Cache
}

func NewTranscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	objectStore storage.ObjectStore,
	sttProvider stt.Provider,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
	audioBucket string,
	summaryMode string,
) ITranscriptionService {
	return &transcriptionService{
		uowFactory:       uowFactory,
		objectStore:      objectStore,
		sttProvider:      sttProvider,
		llmProvider:      llmProvider,
		publisherService: publisherService,
		logger:           sysLogger,
		audioBucket:      audioBucket,
		summaryMode:      summaryMode,
		inFlight:         cache.New(inFlightTTL, inFlightTTL),
	}
}

func (s *transcriptionService) Run(ctx context.Context, doctorId uuid.UUID, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error) {
	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Guard: the caller must be the consultation's doctor. Runs
	// before any storage or paid provider call.
	consultation, err := uow.ConsultationRepository().FindOne(ctx, specification.ByID{ID: req.ConsultationId})
	if err != nil {
		return nil, serverutils.NewInternal("LOOKUP_FAILED", "failed to load consultation", err)
	}
	if consultation == nil {
		return nil, serverutils.NewNotFound("CONSULTATION_NOT_FOUND", "consultation not found")
	}
	if consultation.DoctorId != doctorId {
		s.logger.Warn("transcription", "Ownership mismatch", map[string]interface{}{
			"consultation_id": req.ConsultationId,
			"caller_id":       doctorId,
		})
		return nil, serverutils.NewUnauthorized("OWNERSHIP_MISMATCH", "you do not own this consultation")
	}

	// 2. Reject a second run for the same consultation while one is in
	// flight, so two runs cannot race each other at the persist step.
	key := req.ConsultationId.String()
	if err := s.inFlight.Add(key, struct{}{}, inFlightTTL); err != nil {
		return nil, serverutils.NewConflict("TRANSCRIPTION_IN_PROGRESS", "a transcription for this consultation is already running")
	}
	defer s.inFlight.Delete(key)

	// 3. Fetch the audio. Single attempt, opaque bytes.
	audio, err := s.objectStore.Download(ctx, s.audioBucket, req.AudioPath)
	if err != nil {
		return nil, serverutils.NewBadGateway("FETCH_FAILED", "failed to download consultation audio", err)
	}

	// 4. Speech to text.
	transcript, err := s.sttProvider.Transcribe(ctx, audio, path.Base(req.AudioPath))
	if err != nil {
		return nil, serverutils.NewBadGateway("TRANSCRIPTION_FAILED", "transcription provider failed", err)
	}

	// 5. Summarize per the configured mode.
	var update *contract.TranscriptionUpdate
	var response *dto.TranscribeResponse

	if s.summaryMode == config.SummaryModeStyles {
		summaries, err := s.generateStyleSummaries(ctx, transcript)
		if err != nil {
			return nil, serverutils.NewBadGateway("SUMMARIZATION_FAILED", "summary generation failed", err)
		}
		update = &contract.TranscriptionUpdate{
			Transcript:       transcript,
			SummarySimple:    &summaries[0],
			SummaryDetailed:  &summaries[1],
			SummaryTechnical: &summaries[2],
		}
		response = &dto.TranscribeResponse{
			Success:    true,
			Transcript: transcript,
			Summaries: &dto.SummarySet{
				Simple:    summaries[0],
				Detailed:  summaries[1],
				Technical: summaries[2],
			},
		}
	} else {
		soap, err := s.generateSoapSummary(ctx, transcript)
		if err != nil {
			return nil, serverutils.NewBadGateway("SUMMARIZATION_FAILED", "summary generation failed", err)
		}
		// The structured note occupies the simple slot; the other two
		// stay NULL so the modes never mix in one row.
		update = &contract.TranscriptionUpdate{
			Transcript:    transcript,
			SummarySimple: &soap,
		}
		response = &dto.TranscribeResponse{
			Success:     true,
			Transcript:  transcript,
			SoapSummary: soap,
		}
	}

	// 6. Persist: exactly one update call writes the transcript and all
	// summary slots together.
	if err := uow.ConsultationRepository().UpdateTranscription(ctx, req.ConsultationId, update); err != nil {
		return nil, serverutils.NewInternal("PERSIST_FAILED", "generated content could not be saved", err)
	}

	s.publishTranscribed(ctx, req.ConsultationId, doctorId, time.Since(started))

	return response, nil
}

// generateStyleSummaries issues one generation call per style
// concurrently and waits for all of them. If any call fails the whole
// step fails; sibling results are discarded, never persisted.
func (s *transcriptionService) generateStyleSummaries(ctx context.Context, transcript string) ([]string, error) {
	results := make([]string, len(constant.SummaryStyles))

	g, gctx := errgroup.WithContext(ctx)
	for i, style := range constant.SummaryStyles {
		g.Go(func() error {
			out, err := s.llmProvider.Chat(gctx, []llm.Message{
				{Role: "system", Content: constant.StyleSystemPrompt},
				{Role: "user", Content: constant.BuildStylePrompt(style, transcript)},
			}, llm.WithTemperature(summaryTemperature))
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *transcriptionService) generateSoapSummary(ctx context.Context, transcript string) (string, error) {
	return s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.SoapSystemPrompt},
		{Role: "user", Content: constant.BuildSoapPrompt(transcript)},
	}, llm.WithTemperature(summaryTemperature))
}

func (s *transcriptionService) publishTranscribed(ctx context.Context, consultationId, doctorId uuid.UUID, elapsed time.Duration) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(events.BaseEvent{
		Type: events.TypeConsultationTranscribed,
		Data: dto.ConsultationTranscribedMessage{
			ConsultationId: consultationId,
			DoctorId:       doctorId,
			DurationMs:     elapsed.Milliseconds(),
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	// The pipeline already succeeded; a lost event only costs an audit entry.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("transcription", "Failed to publish transcribed event", map[string]interface{}{
			"consultation_id": consultationId,
			"error":           err.Error(),
		})
	}
}
