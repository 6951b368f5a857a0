package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByDoctor restricts rows to the authoring clinician.
type OwnedByDoctor struct {
	DoctorID uuid.UUID
}

func (s OwnedByDoctor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doctor_id = ?", s.DoctorID)
}

// ForPatient restricts rows to the subject patient.
type ForPatient struct {
	PatientID uuid.UUID
}

func (s ForPatient) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}

// Published keeps only consultations the doctor released to the patient.
type Published struct{}

func (s Published) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("published_for_patient = ?", true)
}
