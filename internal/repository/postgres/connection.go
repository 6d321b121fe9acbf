package postgres

import (
	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema, including the case-insensitive
// uniqueness index on person names.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Person{},
		&domain.AstronautDetail{},
		&domain.AstronautDuty{},
		&domain.AuditLog{},
	)
	if err != nil {
		return err
	}

	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_people_name_lower ON people (lower(name))").Error
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Person:   NewPersonRepository(db),
		Detail:   NewAstronautDetailRepository(db),
		Duty:     NewAstronautDutyRepository(db),
		Query:    NewAstronautQueryRepository(db),
		AuditLog: NewAuditLogRepository(db),
		Tx:       NewTxRunner(db),
	}
}
