package service

import (
	"context"
	"errors"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
)

// QueryService serves the read side. Name lookups report a missing person
// as a NotFound result rather than an error.
type QueryService struct {
	repos *repository.Repositories
}

func NewQueryService(repos *repository.Repositories) *QueryService {
	return &QueryService{repos: repos}
}

func (s *QueryService) GetAllPeople(ctx context.Context) ([]domain.PersonAstronaut, error) {
	people, err := s.repos.Query.ListPeople(ctx)
	if err != nil {
		return nil, domain.Persistence("list people", err)
	}
	return people, nil
}

func (s *QueryService) GetPersonByName(ctx context.Context, name string) (domain.Lookup[domain.PersonAstronaut], error) {
	if err := ValidateNameLookup(name); err != nil {
		return domain.NotFound[domain.PersonAstronaut](), err
	}

	person, err := s.repos.Query.GetPersonByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound[domain.PersonAstronaut](), nil
		}
		return domain.NotFound[domain.PersonAstronaut](), domain.Persistence("get person", err)
	}

	return domain.Found(*person), nil
}

// GetDutyHistoryByName returns the person projection with all of their
// duties, newest insertion first. Duties are read by the id of the person
// found, so a rename in between cannot split the two.
func (s *QueryService) GetDutyHistoryByName(ctx context.Context, name string) (domain.Lookup[domain.DutyHistory], error) {
	if err := ValidateNameLookup(name); err != nil {
		return domain.NotFound[domain.DutyHistory](), err
	}

	person, err := s.repos.Query.GetPersonByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound[domain.DutyHistory](), nil
		}
		return domain.NotFound[domain.DutyHistory](), domain.Persistence("get person", err)
	}

	duties, err := s.repos.Duty.ListByPersonID(ctx, person.PersonID)
	if err != nil {
		return domain.NotFound[domain.DutyHistory](), domain.Persistence("list astronaut duties", err)
	}

	return domain.Found(domain.DutyHistory{
		Person: *person,
		Duties: duties,
	}), nil
}
