package mapper

import (
	"time"

	"mediscribe-be/internal/entity"
	"mediscribe-be/internal/model"
)

type ConsultationMapper struct{}

func NewConsultationMapper() *ConsultationMapper {
	return &ConsultationMapper{}
}

func (m *ConsultationMapper) ToEntity(c *model.Consultation) *entity.Consultation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Consultation{
		Id:                  c.Id,
		DoctorId:            c.DoctorId,
		PatientId:           c.PatientId,
		PatientEmail:        c.PatientEmail,
		AudioPath:           c.AudioPath,
		Transcript:          c.Transcript,
		SummarySimple:       c.SummarySimple,
		SummaryDetailed:     c.SummaryDetailed,
		SummaryTechnical:    c.SummaryTechnical,
		PublishedForPatient: c.PublishedForPatient,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ConsultationMapper) ToModel(c *entity.Consultation) *model.Consultation {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Consultation{
		Id:                  c.Id,
		DoctorId:            c.DoctorId,
		PatientId:           c.PatientId,
		PatientEmail:        c.PatientEmail,
		AudioPath:           c.AudioPath,
		Transcript:          c.Transcript,
		SummarySimple:       c.SummarySimple,
		SummaryDetailed:     c.SummaryDetailed,
		SummaryTechnical:    c.SummaryTechnical,
		PublishedForPatient: c.PublishedForPatient,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ConsultationMapper) ToEntities(consultations []*model.Consultation) []*entity.Consultation {
	entities := make([]*entity.Consultation, len(consultations))
	for i, c := range consultations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
