package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
)

// Store-level facts. Implementations translate driver errors into these so
// services never depend on a particular store.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) error
	GetByName(ctx context.Context, name string) (*domain.Person, error)
	// GetByNameForUpdate is GetByName that also holds the person's row
	// until the surrounding transaction ends.
	GetByNameForUpdate(ctx context.Context, name string) (*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
}

type AstronautDetailRepository interface {
	Create(ctx context.Context, detail *domain.AstronautDetail) error
	GetByPersonID(ctx context.Context, personID int64) (*domain.AstronautDetail, error)
	Update(ctx context.Context, detail *domain.AstronautDetail) error
}

type AstronautDutyRepository interface {
	Create(ctx context.Context, duty *domain.AstronautDuty) error
	Update(ctx context.Context, duty *domain.AstronautDuty) error
	// GetOpenByPersonID returns the most recently inserted duty with no end
	// date.
	GetOpenByPersonID(ctx context.Context, personID int64) (*domain.AstronautDuty, error)
	GetByTitleAndStart(ctx context.Context, personID int64, dutyTitle string, dutyStart time.Time) (*domain.AstronautDuty, error)
	// ListByPersonID returns every duty of the person, newest insertion
	// first.
	ListByPersonID(ctx context.Context, personID int64) ([]domain.AstronautDuty, error)
}

// AstronautQueryRepository serves the read-side projections.
type AstronautQueryRepository interface {
	ListPeople(ctx context.Context) ([]domain.PersonAstronaut, error)
	GetPersonByName(ctx context.Context, name string) (*domain.PersonAstronaut, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByRequest(ctx context.Context, requestIdentifier string) ([]domain.AuditLog, error)
}

// TxRunner runs fn inside a single transaction. The repositories handed to
// fn are bound to that transaction; fn returning an error rolls it back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	Person   PersonRepository
	Detail   AstronautDetailRepository
	Duty     AstronautDutyRepository
	Query    AstronautQueryRepository
	AuditLog AuditLogRepository
	Tx       TxRunner
}
