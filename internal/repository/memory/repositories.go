package memory

import (
	"context"
	"strings"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
)

func (d *dataset) personByName(name string) (int, bool) {
	for i := range d.people {
		if strings.EqualFold(d.people[i].Name, name) {
			return i, true
		}
	}
	return -1, false
}

func (d *dataset) personByID(id int64) (int, bool) {
	for i := range d.people {
		if d.people[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

type personRepository struct {
	v *view
}

func (r *personRepository) Create(_ context.Context, person *domain.Person) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.personByName(person.Name); ok {
			return repository.ErrDuplicate
		}
		d.lastPersonID++
		now := time.Now()
		person.ID = d.lastPersonID
		person.CreatedAt = now
		person.UpdatedAt = now
		d.people = append(d.people, *person)
		return nil
	})
}

func (r *personRepository) GetByName(_ context.Context, name string) (*domain.Person, error) {
	var found domain.Person
	err := r.v.read(func(d *dataset) error {
		i, ok := d.personByName(name)
		if !ok {
			return repository.ErrNotFound
		}
		found = d.people[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// GetByNameForUpdate needs no row lock here: transactions already exclude
// each other.
func (r *personRepository) GetByNameForUpdate(ctx context.Context, name string) (*domain.Person, error) {
	return r.GetByName(ctx, name)
}

func (r *personRepository) Update(_ context.Context, person *domain.Person) error {
	return r.v.write(func(d *dataset) error {
		i, ok := d.personByID(person.ID)
		if !ok {
			return repository.ErrNotFound
		}
		if j, dup := d.personByName(person.Name); dup && j != i {
			return repository.ErrDuplicate
		}
		person.CreatedAt = d.people[i].CreatedAt
		person.UpdatedAt = time.Now()
		d.people[i] = *person
		return nil
	})
}

type detailRepository struct {
	v *view
}

func (r *detailRepository) Create(_ context.Context, detail *domain.AstronautDetail) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.details[detail.PersonID]; ok {
			return repository.ErrDuplicate
		}
		d.lastDetailID++
		detail.ID = d.lastDetailID
		detail.UpdatedAt = time.Now()
		d.details[detail.PersonID] = copyDetail(*detail)
		return nil
	})
}

func (r *detailRepository) GetByPersonID(_ context.Context, personID int64) (*domain.AstronautDetail, error) {
	var found domain.AstronautDetail
	err := r.v.read(func(d *dataset) error {
		detail, ok := d.details[personID]
		if !ok {
			return repository.ErrNotFound
		}
		found = copyDetail(detail)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *detailRepository) Update(_ context.Context, detail *domain.AstronautDetail) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.details[detail.PersonID]; !ok {
			return repository.ErrNotFound
		}
		detail.UpdatedAt = time.Now()
		d.details[detail.PersonID] = copyDetail(*detail)
		return nil
	})
}

type dutyRepository struct {
	v *view
}

func (r *dutyRepository) Create(_ context.Context, duty *domain.AstronautDuty) error {
	return r.v.write(func(d *dataset) error {
		d.lastDutyID++
		duty.ID = d.lastDutyID
		d.duties = append(d.duties, copyDuty(*duty))
		return nil
	})
}

func (r *dutyRepository) Update(_ context.Context, duty *domain.AstronautDuty) error {
	return r.v.write(func(d *dataset) error {
		for i := range d.duties {
			if d.duties[i].ID == duty.ID {
				d.duties[i] = copyDuty(*duty)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r *dutyRepository) GetOpenByPersonID(_ context.Context, personID int64) (*domain.AstronautDuty, error) {
	var found domain.AstronautDuty
	err := r.v.read(func(d *dataset) error {
		// duties is kept in insertion (id) order
		for i := len(d.duties) - 1; i >= 0; i-- {
			if d.duties[i].PersonID == personID && d.duties[i].IsOpen() {
				found = copyDuty(d.duties[i])
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *dutyRepository) GetByTitleAndStart(_ context.Context, personID int64, dutyTitle string, dutyStart time.Time) (*domain.AstronautDuty, error) {
	var found domain.AstronautDuty
	err := r.v.read(func(d *dataset) error {
		for _, duty := range d.duties {
			if duty.PersonID == personID && duty.DutyTitle == dutyTitle && time.Time(duty.DutyStartDate).Equal(dutyStart) {
				found = copyDuty(duty)
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *dutyRepository) ListByPersonID(_ context.Context, personID int64) ([]domain.AstronautDuty, error) {
	duties := []domain.AstronautDuty{}
	err := r.v.read(func(d *dataset) error {
		for j := len(d.duties) - 1; j >= 0; j-- {
			if d.duties[j].PersonID == personID {
				duties = append(duties, copyDuty(d.duties[j]))
			}
		}
		return nil
	})
	return duties, err
}

type queryRepository struct {
	v *view
}

func (d *dataset) project(p *domain.Person) domain.PersonAstronaut {
	if detail, ok := d.details[p.ID]; ok {
		return domain.Project(p, &detail)
	}
	return domain.Project(p, nil)
}

func (r *queryRepository) ListPeople(_ context.Context) ([]domain.PersonAstronaut, error) {
	people := []domain.PersonAstronaut{}
	err := r.v.read(func(d *dataset) error {
		for i := range d.people {
			people = append(people, d.project(&d.people[i]))
		}
		return nil
	})
	return people, err
}

func (r *queryRepository) GetPersonByName(_ context.Context, name string) (*domain.PersonAstronaut, error) {
	var found domain.PersonAstronaut
	err := r.v.read(func(d *dataset) error {
		i, ok := d.personByName(name)
		if !ok {
			return repository.ErrNotFound
		}
		found = d.project(&d.people[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

type auditLogRepository struct {
	v *view
}

func (r *auditLogRepository) Create(_ context.Context, entry *domain.AuditLog) error {
	return r.v.write(func(d *dataset) error {
		d.lastLogID++
		entry.ID = d.lastLogID
		d.logs = append(d.logs, *entry)
		return nil
	})
}

func (r *auditLogRepository) ListByRequest(_ context.Context, requestIdentifier string) ([]domain.AuditLog, error) {
	entries := []domain.AuditLog{}
	err := r.v.read(func(d *dataset) error {
		for _, entry := range d.logs {
			if entry.RequestIdentifier == requestIdentifier {
				entries = append(entries, entry)
			}
		}
		return nil
	})
	return entries, err
}
