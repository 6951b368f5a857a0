package model

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DoctorId            uuid.UUID `gorm:"type:uuid;not null;index"`
	PatientId           uuid.UUID `gorm:"type:uuid;not null;index"`
	PatientEmail        string    `gorm:"type:varchar(255)"`
	AudioPath           string    `gorm:"type:varchar(512)"`
	Transcript          *string   `gorm:"type:text"`
	SummarySimple       *string   `gorm:"type:text"`
	SummaryDetailed     *string   `gorm:"type:text"`
	SummaryTechnical    *string   `gorm:"type:text"`
	PublishedForPatient bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (Consultation) TableName() string {
	return "consultations"
}
