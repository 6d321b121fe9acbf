package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/metrics"
	"github.com/dom/stargate-tracker/internal/repository"
	"go.uber.org/zap"
)

const (
	msgPersonNotFound = "No person was found matching name '%s'"
	msgPersonExists   = "A person already exists with name matching '%s'"
)

// PersonNotFoundMessage is the message reported when no person matches name.
func PersonNotFoundMessage(name string) string {
	return fmt.Sprintf(msgPersonNotFound, name)
}

type PersonService struct {
	repos   *repository.Repositories
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewPersonService(repos *repository.Repositories, log *zap.Logger, m *metrics.Metrics) *PersonService {
	return &PersonService{
		repos:   repos,
		log:     log,
		metrics: m,
	}
}

// CreatePerson registers a new person. Names are unique ignoring case.
func (s *PersonService) CreatePerson(ctx context.Context, name string) (*domain.Person, error) {
	if err := ValidateCreatePerson(name); err != nil {
		return nil, err
	}

	_, err := s.repos.Person.GetByName(ctx, name)
	switch {
	case err == nil:
		return nil, domain.Conflictf(msgPersonExists, name)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, domain.Persistence("get person", err)
	}

	person := &domain.Person{Name: name}
	if err := s.repos.Person.Create(ctx, person); err != nil {
		// lost a race against a concurrent create of the same name
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflictf(msgPersonExists, name)
		}
		return nil, domain.Persistence("create person", err)
	}

	s.metrics.IncrementPeopleCreated()
	s.log.Info("person created", zap.Int64("person_id", person.ID), zap.String("name", person.Name))

	return person, nil
}

// RenamePerson changes the name of the person matching currentName and
// returns its id. The new name may differ from the current one only by case.
func (s *PersonService) RenamePerson(ctx context.Context, currentName, newName string) (int64, error) {
	if err := ValidateRenamePerson(currentName, newName); err != nil {
		return 0, err
	}

	var personID int64
	err := s.repos.Tx.RunInTx(ctx, func(tx *repository.Repositories) error {
		person, err := tx.Person.GetByNameForUpdate(ctx, currentName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf(msgPersonNotFound, currentName)
			}
			return domain.Persistence("get person", err)
		}

		other, err := tx.Person.GetByName(ctx, newName)
		switch {
		case err == nil && other.ID != person.ID:
			return domain.Conflictf(msgPersonExists, newName)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return domain.Persistence("get person", err)
		}

		person.Name = newName
		if err := tx.Person.Update(ctx, person); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.Conflictf(msgPersonExists, newName)
			}
			return domain.Persistence("update person", err)
		}

		personID = person.ID
		return nil
	})
	if err != nil {
		return 0, asPersistence("rename person", err)
	}

	s.metrics.IncrementPeopleRenamed()
	s.log.Info("person renamed",
		zap.Int64("person_id", personID),
		zap.String("from", currentName),
		zap.String("to", newName),
	)

	return personID, nil
}

// asPersistence leaves classified errors alone and wraps anything else,
// such as a failed commit or a cancelled context, as a store failure.
func asPersistence(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Persistence(op, err)
}
