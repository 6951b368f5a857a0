package dto

import (
	"github.com/google/uuid"
)

type TranscribeRequest struct {
	ConsultationId uuid.UUID `json:"consultation_id" validate:"required"`
	AudioPath      string    `json:"audio_path" validate:"required"`
}

type SummarySet struct {
	Simple    string `json:"simple"`
	Detailed  string `json:"detailed,omitempty"`
	Technical string `json:"technical,omitempty"`
}

// TranscribeResponse mirrors the shape the doctor client consumes:
// either three style variants or a single structured note, never both.
type TranscribeResponse struct {
	Success     bool        `json:"success"`
	Transcript  string      `json:"transcript"`
	Summaries   *SummarySet `json:"summaries,omitempty"`
	SoapSummary string      `json:"soap_summary,omitempty"`
}

// ConsultationTranscribedMessage is the event payload published after a
// successful pipeline run.
type ConsultationTranscribedMessage struct {
	ConsultationId uuid.UUID `json:"consultation_id"`
	DoctorId       uuid.UUID `json:"doctor_id"`
	DurationMs     int64     `json:"duration_ms"`
}

// ConsultationPublishedMessage is the event payload published when a
// doctor flips patient-facing visibility.
type ConsultationPublishedMessage struct {
	ConsultationId uuid.UUID `json:"consultation_id"`
	DoctorId       uuid.UUID `json:"doctor_id"`
	Published      bool      `json:"published"`
}
