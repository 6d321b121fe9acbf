// Package memory is an in-process implementation of the repository
// interfaces. Transactions work on a private copy of the data set that is
// swapped in on commit, and only one writer runs at a time.
package memory

import (
	"context"
	"sync"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"gorm.io/datatypes"
)

type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *dataset
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

// NewRepositories returns repositories that operate on the committed state
// of s.
func NewRepositories(s *Store) *repository.Repositories {
	return (&view{store: s}).repositories()
}

type dataset struct {
	people  []domain.Person
	details map[int64]domain.AstronautDetail
	duties  []domain.AstronautDuty
	logs    []domain.AuditLog

	lastPersonID int64
	lastDetailID int64
	lastDutyID   int64
	lastLogID    int64
}

func newDataset() *dataset {
	return &dataset{details: make(map[int64]domain.AstronautDetail)}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		people:       append([]domain.Person(nil), d.people...),
		details:      make(map[int64]domain.AstronautDetail, len(d.details)),
		duties:       make([]domain.AstronautDuty, len(d.duties)),
		logs:         append([]domain.AuditLog(nil), d.logs...),
		lastPersonID: d.lastPersonID,
		lastDetailID: d.lastDetailID,
		lastDutyID:   d.lastDutyID,
		lastLogID:    d.lastLogID,
	}
	for k, v := range d.details {
		c.details[k] = copyDetail(v)
	}
	for i, v := range d.duties {
		c.duties[i] = copyDuty(v)
	}
	return c
}

func copyDate(d *datatypes.Date) *datatypes.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func copyDetail(d domain.AstronautDetail) domain.AstronautDetail {
	d.CareerEndDate = copyDate(d.CareerEndDate)
	return d
}

func copyDuty(d domain.AstronautDuty) domain.AstronautDuty {
	d.DutyEndDate = copyDate(d.DutyEndDate)
	return d
}

// view binds repositories either to the committed data (tx == nil) or to a
// transaction's working copy.
type view struct {
	store *Store
	tx    *dataset
}

func (v *view) repositories() *repository.Repositories {
	return &repository.Repositories{
		Person:   &personRepository{v: v},
		Detail:   &detailRepository{v: v},
		Duty:     &dutyRepository{v: v},
		Query:    &queryRepository{v: v},
		AuditLog: &auditLogRepository{v: v},
		Tx:       v,
	}
}

func (v *view) read(fn func(d *dataset) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.data)
}

func (v *view) write(fn func(d *dataset) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.writeMu.Lock()
	defer v.store.writeMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func (v *view) RunInTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	if v.tx != nil {
		return fn(v.repositories())
	}

	s := v.store
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn((&view{store: s, tx: work}).repositories()); err != nil {
		return err
	}

	// A request cancelled mid-flight must not commit.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}
