package postgres

import (
	"context"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"gorm.io/gorm"
)

const personAstronautColumns = `people.id AS person_id,
	people.name AS name,
	COALESCE(d.current_rank, '') AS current_rank,
	COALESCE(d.current_duty_title, '') AS current_duty_title,
	d.career_start_date AS career_start_date,
	d.career_end_date AS career_end_date`

type astronautQueryRepository struct {
	db *gorm.DB
}

func NewAstronautQueryRepository(db *gorm.DB) *astronautQueryRepository {
	return &astronautQueryRepository{db: db}
}

func (r *astronautQueryRepository) projection(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("people").
		Select(personAstronautColumns).
		Joins("LEFT JOIN astronaut_details d ON d.person_id = people.id")
}

func (r *astronautQueryRepository) ListPeople(ctx context.Context) ([]domain.PersonAstronaut, error) {
	people := []domain.PersonAstronaut{}
	if err := r.projection(ctx).Order("people.id ASC").Scan(&people).Error; err != nil {
		return nil, translate(err)
	}
	return people, nil
}

func (r *astronautQueryRepository) GetPersonByName(ctx context.Context, name string) (*domain.PersonAstronaut, error) {
	var people []domain.PersonAstronaut
	err := r.projection(ctx).
		Where("lower(people.name) = lower(?)", name).
		Limit(1).
		Scan(&people).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(people) == 0 {
		return nil, repository.ErrNotFound
	}
	return &people[0], nil
}
