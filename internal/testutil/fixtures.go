package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"github.com/google/uuid"
)

// Date returns midnight UTC of the given calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// PersonBuilder creates test people with a builder pattern
type PersonBuilder struct {
	name   string
	duties []pendingDuty
}

type pendingDuty struct {
	rank  string
	title string
	start time.Time
}

// NewPersonBuilder creates a new PersonBuilder with a unique name
func NewPersonBuilder() *PersonBuilder {
	return &PersonBuilder{
		name: fmt.Sprintf("astronaut_%s", uuid.New().String()[:8]),
	}
}

// WithName sets the person's name
func (b *PersonBuilder) WithName(name string) *PersonBuilder {
	b.name = name
	return b
}

// WithDuty queues a duty row to insert after the person. Rows are stored as
// given; no history rules are applied.
func (b *PersonBuilder) WithDuty(rank, title string, start time.Time) *PersonBuilder {
	b.duties = append(b.duties, pendingDuty{rank: rank, title: title, start: start})
	return b
}

// Build creates the person and any queued duties through repos
func (b *PersonBuilder) Build(t *testing.T, repos *repository.Repositories) *domain.Person {
	t.Helper()

	ctx := context.Background()
	person := &domain.Person{Name: b.name}
	if err := repos.Person.Create(ctx, person); err != nil {
		t.Fatalf("failed to create person: %v", err)
	}

	for _, d := range b.duties {
		duty := &domain.AstronautDuty{
			PersonID:      person.ID,
			Rank:          d.rank,
			DutyTitle:     d.title,
			DutyStartDate: domain.DateOf(d.start),
		}
		if err := repos.Duty.Create(ctx, duty); err != nil {
			t.Fatalf("failed to create duty: %v", err)
		}
	}

	return person
}
