package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"mediscribe-be/internal/dto"
	"mediscribe-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailService struct {
	mu    sync.Mutex
	sent  []string
	err   error
	calls int
}

func (s *fakeEmailService) SendSummaryPublished(toEmail, consultationDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, toEmail)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func newConsultationEnv(repo *fakeConsultationRepo, emails *fakeEmailService) (IConsultationService, *fakeUowFactory, *fakePublisher) {
	factory := &fakeUowFactory{repo: repo}
	publisher := &fakePublisher{}
	svc := NewConsultationService(factory, publisher, emails, noopLogger{})
	return svc, factory, publisher
}

func TestPublishSetsFlagAndNotifiesPatient(t *testing.T) {
	doctorId := uuid.New()
	consultation := newTestConsultation(doctorId)
	consultation.PatientEmail = "patient@example.com"

	repo := newFakeConsultationRepo(consultation)
	emails := &fakeEmailService{}
	svc, factory, publisher := newConsultationEnv(repo, emails)

	res, err := svc.Publish(context.Background(), doctorId, &dto.PublishConsultationRequest{
		Id:        consultation.Id,
		Published: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, res.PublishedForPatient)
	assert.True(t, consultation.PublishedForPatient)
	assert.Equal(t, []string{"patient@example.com"}, emails.sent)

	// Check and write ran inside one committed transaction
	uow := factory.lastUow()
	require.NotNil(t, uow)
	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 1, uow.commits)

	// A visibility event goes out on the bus
	require.Len(t, publisher.payloads, 1)
	var envelope events.Envelope
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &envelope))
	assert.Equal(t, events.TypeConsultationPublished, envelope.Type)
	var msg dto.ConsultationPublishedMessage
	require.NoError(t, json.Unmarshal(envelope.Data, &msg))
	assert.Equal(t, consultation.Id, msg.ConsultationId)
	assert.True(t, msg.Published)
}

func TestPublishOwnershipMismatch(t *testing.T) {
	consultation := newTestConsultation(uuid.New())
	repo := newFakeConsultationRepo(consultation)
	emails := &fakeEmailService{}
	svc, factory, publisher := newConsultationEnv(repo, emails)

	_, err := svc.Publish(context.Background(), uuid.New(), &dto.PublishConsultationRequest{
		Id:        consultation.Id,
		Published: boolPtr(true),
	})

	assertApiErrorCode(t, err, "OWNERSHIP_MISMATCH")
	assert.False(t, consultation.PublishedForPatient)
	assert.Equal(t, 0, emails.calls)
	assert.Len(t, publisher.payloads, 0)

	// The opened transaction rolls back, never commits
	uow := factory.lastUow()
	require.NotNil(t, uow)
	assert.Equal(t, 0, uow.commits)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestUnpublishSendsNoEmail(t *testing.T) {
	doctorId := uuid.New()
	consultation := newTestConsultation(doctorId)
	consultation.PatientEmail = "patient@example.com"
	consultation.PublishedForPatient = true

	repo := newFakeConsultationRepo(consultation)
	emails := &fakeEmailService{}
	svc, _, publisher := newConsultationEnv(repo, emails)

	res, err := svc.Publish(context.Background(), doctorId, &dto.PublishConsultationRequest{
		Id:        consultation.Id,
		Published: boolPtr(false),
	})

	require.NoError(t, err)
	assert.False(t, res.PublishedForPatient)
	assert.Equal(t, 0, emails.calls)

	// Unpublishing still records a visibility event
	require.Len(t, publisher.payloads, 1)
	var envelope events.Envelope
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &envelope))
	assert.Equal(t, events.TypeConsultationPublished, envelope.Type)
}

func TestPublishMailerFailureDoesNotFailRequest(t *testing.T) {
	doctorId := uuid.New()
	consultation := newTestConsultation(doctorId)
	consultation.PatientEmail = "patient@example.com"

	repo := newFakeConsultationRepo(consultation)
	emails := &fakeEmailService{err: assert.AnError}
	svc, _, _ := newConsultationEnv(repo, emails)

	res, err := svc.Publish(context.Background(), doctorId, &dto.PublishConsultationRequest{
		Id:        consultation.Id,
		Published: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, res.PublishedForPatient)
}

func TestPublishPersistFailureRollsBack(t *testing.T) {
	doctorId := uuid.New()
	consultation := newTestConsultation(doctorId)
	consultation.PatientEmail = "patient@example.com"

	repo := newFakeConsultationRepo(consultation)
	repo.updateErr = fmt.Errorf("connection reset")
	emails := &fakeEmailService{}
	svc, factory, publisher := newConsultationEnv(repo, emails)

	_, err := svc.Publish(context.Background(), doctorId, &dto.PublishConsultationRequest{
		Id:        consultation.Id,
		Published: boolPtr(true),
	})

	assertApiErrorCode(t, err, "PERSIST_FAILED")
	assert.Equal(t, 0, emails.calls)
	assert.Len(t, publisher.payloads, 0)

	uow := factory.lastUow()
	require.NotNil(t, uow)
	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 0, uow.commits)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestShowRequiresOwnership(t *testing.T) {
	doctorId := uuid.New()
	consultation := newTestConsultation(doctorId)
	repo := newFakeConsultationRepo(consultation)
	svc, _, _ := newConsultationEnv(repo, &fakeEmailService{})

	res, err := svc.Show(context.Background(), doctorId, consultation.Id)
	require.NoError(t, err)
	assert.Equal(t, consultation.Id, res.Id)

	_, err = svc.Show(context.Background(), uuid.New(), consultation.Id)
	assertApiErrorCode(t, err, "OWNERSHIP_MISMATCH")
}
