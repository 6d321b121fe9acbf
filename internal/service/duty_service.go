package service

import (
	"context"
	"errors"

	"github.com/dom/stargate-tracker/internal/config"
	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/metrics"
	"github.com/dom/stargate-tracker/internal/repository"
	"go.uber.org/zap"
)

const msgDutyExists = "'%s' has previous astronaut duty"

// DutyService maintains a person's duty history and the current-status
// detail derived from it.
type DutyService struct {
	repos   *repository.Repositories
	rules   config.DutyRules
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewDutyService(repos *repository.Repositories, rules config.DutyRules, log *zap.Logger, m *metrics.Metrics) *DutyService {
	return &DutyService{
		repos:   repos,
		rules:   rules,
		log:     log,
		metrics: m,
	}
}

// RecordDuty appends a duty to the named person's history and returns its
// id. The person's open duty is closed the day before the new one starts
// and the current-status detail is created or brought up to date. All of it
// is committed in one transaction.
//
// "Open duty" means the most recently inserted duty without an end date.
// Start dates come from the caller and are not ordered, so they are never
// used to decide which duty is current.
func (s *DutyService) RecordDuty(ctx context.Context, input RecordDutyInput) (int64, error) {
	if err := ValidateRecordDuty(s.rules, input); err != nil {
		return 0, err
	}

	retiring := input.DutyTitle == s.rules.RetiredDutyTitle
	start := input.DutyStartDate

	var (
		dutyID int64
		kind   string
	)
	err := s.repos.Tx.RunInTx(ctx, func(tx *repository.Repositories) error {
		// Locks the person so concurrent duties for the same person queue up.
		person, err := tx.Person.GetByNameForUpdate(ctx, input.Name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf(msgPersonNotFound, input.Name)
			}
			return domain.Persistence("get person", err)
		}

		// Compares the full timestamp against stored dates, so only a
		// midnight start can ever match.
		_, err = tx.Duty.GetByTitleAndStart(ctx, person.ID, input.DutyTitle, start)
		switch {
		case err == nil:
			return domain.Conflictf(msgDutyExists, input.Name)
		case !errors.Is(err, repository.ErrNotFound):
			return domain.Persistence("get duty", err)
		}

		detail, err := tx.Detail.GetByPersonID(ctx, person.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			kind = metrics.DutyKindFirst
			detail = &domain.AstronautDetail{
				PersonID:         person.ID,
				CurrentRank:      input.Rank,
				CurrentDutyTitle: input.DutyTitle,
				CareerStartDate:  domain.DateOf(start),
			}
			if retiring {
				end := domain.DateOf(start)
				detail.CareerEndDate = &end
			}
			if err := tx.Detail.Create(ctx, detail); err != nil {
				return domain.Persistence("create astronaut detail", err)
			}
		case err != nil:
			return domain.Persistence("get astronaut detail", err)
		default:
			kind = metrics.DutyKindSubsequent
			detail.CurrentRank = input.Rank
			detail.CurrentDutyTitle = input.DutyTitle
			// A later non-retiring duty keeps whatever end date is set.
			if retiring {
				end := domain.DayBefore(start)
				detail.CareerEndDate = &end
			}
			if err := tx.Detail.Update(ctx, detail); err != nil {
				return domain.Persistence("update astronaut detail", err)
			}
		}

		open, err := tx.Duty.GetOpenByPersonID(ctx, person.ID)
		switch {
		case err == nil:
			end := domain.DayBefore(start)
			open.DutyEndDate = &end
			if err := tx.Duty.Update(ctx, open); err != nil {
				return domain.Persistence("close astronaut duty", err)
			}
		case !errors.Is(err, repository.ErrNotFound):
			return domain.Persistence("get open astronaut duty", err)
		}

		duty := &domain.AstronautDuty{
			PersonID:      person.ID,
			Rank:          input.Rank,
			DutyTitle:     input.DutyTitle,
			DutyStartDate: domain.DateOf(start),
		}
		if err := tx.Duty.Create(ctx, duty); err != nil {
			return domain.Persistence("create astronaut duty", err)
		}

		dutyID = duty.ID
		return nil
	})
	if err != nil {
		return 0, asPersistence("record astronaut duty", err)
	}

	if retiring {
		kind = metrics.DutyKindRetirement
	}
	s.metrics.IncrementDutiesRecorded(kind)
	s.log.Info("astronaut duty recorded",
		zap.Int64("duty_id", dutyID),
		zap.String("name", input.Name),
		zap.String("duty_title", input.DutyTitle),
		zap.String("kind", kind),
	)

	return dutyID, nil
}
