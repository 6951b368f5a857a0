package entity

import (
	"time"

	"github.com/google/uuid"
)

// Consultation is a single recorded doctor-patient encounter.
// DoctorId is set at creation and never changes; only the owning doctor
// may trigger transcription for it.
type Consultation struct {
	Id           uuid.UUID
	DoctorId     uuid.UUID
	PatientId    uuid.UUID
	PatientEmail string
	AudioPath    string

	// Transcript and the summary columns are either all nil (not yet
	// processed) or all populated by a completed pipeline run. In SOAP
	// mode the structured note lives in SummarySimple and the other two
	// slots stay nil.
	Transcript       *string
	SummarySimple    *string
	SummaryDetailed  *string
	SummaryTechnical *string

	PublishedForPatient bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
