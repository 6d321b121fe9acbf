package postgres

import (
	"errors"

	"github.com/dom/stargate-tracker/internal/repository"
	"gorm.io/gorm"
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(repository.ErrDuplicate, err)
	default:
		return err
	}
}
