package contract

import (
	"context"

	"mediscribe-be/internal/entity"
	"mediscribe-be/internal/repository/specification"

	"github.com/google/uuid"
)

// TranscriptionUpdate is the single write the pipeline issues on success.
// All four columns are set in one update call; a nil summary slot is
// written as NULL so a re-run in the other mode cannot leave stale text.
type TranscriptionUpdate struct {
	Transcript       string
	SummarySimple    *string
	SummaryDetailed  *string
	SummaryTechnical *string
}

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Consultation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Consultation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateTranscription(ctx context.Context, id uuid.UUID, update *TranscriptionUpdate) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}
