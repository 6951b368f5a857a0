package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShowConsultationResponse struct {
	Id                  uuid.UUID  `json:"id"`
	PatientId           uuid.UUID  `json:"patient_id"`
	AudioPath           string     `json:"audio_path"`
	Transcript          *string    `json:"transcript"`
	SummarySimple       *string    `json:"summary_simple"`
	SummaryDetailed     *string    `json:"summary_detailed"`
	SummaryTechnical    *string    `json:"summary_technical"`
	PublishedForPatient bool       `json:"published_for_patient"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

type PublishConsultationRequest struct {
	Id        uuid.UUID
	Published *bool `json:"published" validate:"required"`
}

type PublishConsultationResponse struct {
	Id                  uuid.UUID `json:"id"`
	PublishedForPatient bool      `json:"published_for_patient"`
}
