package postgres

import (
	"context"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"gorm.io/gorm"
)

type astronautDetailRepository struct {
	db *gorm.DB
}

func NewAstronautDetailRepository(db *gorm.DB) *astronautDetailRepository {
	return &astronautDetailRepository{db: db}
}

func (r *astronautDetailRepository) Create(ctx context.Context, detail *domain.AstronautDetail) error {
	return translate(r.db.WithContext(ctx).Create(detail).Error)
}

func (r *astronautDetailRepository) GetByPersonID(ctx context.Context, personID int64) (*domain.AstronautDetail, error) {
	var detail domain.AstronautDetail
	err := r.db.WithContext(ctx).Take(&detail, "person_id = ?", personID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &detail, nil
}

func (r *astronautDetailRepository) Update(ctx context.Context, detail *domain.AstronautDetail) error {
	return translate(r.db.WithContext(ctx).Save(detail).Error)
}

type astronautDutyRepository struct {
	db *gorm.DB
}

func NewAstronautDutyRepository(db *gorm.DB) *astronautDutyRepository {
	return &astronautDutyRepository{db: db}
}

func (r *astronautDutyRepository) Create(ctx context.Context, duty *domain.AstronautDuty) error {
	return translate(r.db.WithContext(ctx).Create(duty).Error)
}

func (r *astronautDutyRepository) Update(ctx context.Context, duty *domain.AstronautDuty) error {
	return translate(r.db.WithContext(ctx).Save(duty).Error)
}

func (r *astronautDutyRepository) GetOpenByPersonID(ctx context.Context, personID int64) (*domain.AstronautDuty, error) {
	var duty domain.AstronautDuty
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND duty_end_date IS NULL", personID).
		Order("id DESC").
		Take(&duty).Error
	if err != nil {
		return nil, translate(err)
	}
	return &duty, nil
}

// GetByTitleAndStart matches dutyStart exactly. The column holds dates, so
// a start that is not midnight UTC can never equal a stored value; Postgres
// would otherwise truncate the parameter to its date.
func (r *astronautDutyRepository) GetByTitleAndStart(ctx context.Context, personID int64, dutyTitle string, dutyStart time.Time) (*domain.AstronautDuty, error) {
	day := domain.DateOf(dutyStart.UTC())
	if !dutyStart.Equal(time.Time(day)) {
		return nil, repository.ErrNotFound
	}

	var duty domain.AstronautDuty
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND duty_title = ? AND duty_start_date = ?", personID, dutyTitle, day).
		Take(&duty).Error
	if err != nil {
		return nil, translate(err)
	}
	return &duty, nil
}

func (r *astronautDutyRepository) ListByPersonID(ctx context.Context, personID int64) ([]domain.AstronautDuty, error) {
	duties := []domain.AstronautDuty{}
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("id DESC").
		Find(&duties).Error
	if err != nil {
		return nil, translate(err)
	}
	return duties, nil
}
