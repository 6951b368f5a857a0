package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ClientURL          string
	EventsTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type StorageConfig struct {
	SupabaseURL    string
	ServiceRoleKey string
	AudioBucket    string
}

// SummaryMode values. Exactly one mode is active per deployment.
const (
	SummaryModeStyles = "styles" // simple + detailed + technical, generated concurrently
	SummaryModeSoap   = "soap"   // single structured clinical note
)

type AIConfig struct {
	OpenAIAPIKey  string
	SttModel      string
	SttLanguage   string // fixed two-letter hint, never derived from the audio
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string
	OllamaBaseURL string
	SummaryMode   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			EventsTopic:        getEnv("CONSULTATION_EVENTS_TOPIC_NAME", "CONSULTATION_EVENTS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MediScribe"),
		},
		Storage: StorageConfig{
			SupabaseURL:    getEnv("SUPABASE_URL", ""),
			ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			AudioBucket:    getEnv("CONSULT_AUDIO_BUCKET", "consult-audio"),
		},
		Ai: AIConfig{
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			SttModel:      getEnv("STT_MODEL", "whisper-1"),
			SttLanguage:   getEnv("STT_LANGUAGE", "en"),
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			SummaryMode:   getEnv("SUMMARY_MODE", SummaryModeSoap),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
