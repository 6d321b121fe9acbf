package postgres

import (
	"context"

	"github.com/dom/stargate-tracker/internal/repository"
	"gorm.io/gorm"
)

type txRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *txRunner {
	return &txRunner{db: db}
}

func (t *txRunner) RunInTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
