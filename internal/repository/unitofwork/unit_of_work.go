package unitofwork

import (
	"context"

	"mediscribe-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConsultationRepository() contract.ConsultationRepository
}
