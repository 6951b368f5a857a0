package bootstrap

import (
	"log"

	"mediscribe-be/internal/config"
	"mediscribe-be/internal/controller"
	"mediscribe-be/internal/pkg/logger"
	"mediscribe-be/internal/pkg/mailer"
	"mediscribe-be/internal/repository/unitofwork"
	"mediscribe-be/internal/service"
	"mediscribe-be/pkg/llm/factory"
	"mediscribe-be/pkg/storage/supabase"
	"mediscribe-be/pkg/stt/whisper"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TranscriptionController controller.ITranscriptionController
	ConsultationController  controller.IConsultationController

	// Background services (run by main.go)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(pubSub, cfg.App.EventsTopic)

	// 3. Providers
	objectStore := supabase.NewSupabaseStorageClient(cfg.Storage.SupabaseURL, cfg.Storage.ServiceRoleKey)

	sttProvider := whisper.NewWhisperProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.SttModel, cfg.Ai.SttLanguage)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s), summary mode: %s", cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.SummaryMode)

	// 4. Services
	transcriptionService := service.NewTranscriptionService(
		uowFactory,
		objectStore,
		sttProvider,
		llmProvider,
		publisherService,
		sysLogger,
		cfg.Storage.AudioBucket,
		cfg.Ai.SummaryMode,
	)
	consultationService := service.NewConsultationService(uowFactory, publisherService, emailService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, uowFactory, sysLogger)

	return &Container{
		TranscriptionController: controller.NewTranscriptionController(transcriptionService),
		ConsultationController:  controller.NewConsultationController(consultationService),
		ConsumerService:         consumerService,
		Logger:                  sysLogger,
	}
}
