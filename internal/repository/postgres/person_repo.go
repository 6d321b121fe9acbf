package postgres

import (
	"context"

	"github.com/dom/stargate-tracker/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *personRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	return translate(r.db.WithContext(ctx).Create(person).Error)
}

func (r *personRepository) GetByName(ctx context.Context, name string) (*domain.Person, error) {
	var person domain.Person
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		Take(&person).Error
	if err != nil {
		return nil, translate(err)
	}
	return &person, nil
}

func (r *personRepository) GetByNameForUpdate(ctx context.Context, name string) (*domain.Person, error) {
	var person domain.Person
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lower(name) = lower(?)", name).
		Take(&person).Error
	if err != nil {
		return nil, translate(err)
	}
	return &person, nil
}

func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	return translate(r.db.WithContext(ctx).Save(person).Error)
}
