package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDateOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "strips time of day",
			in:   time.Date(1966, 1, 1, 17, 45, 12, 999, time.UTC),
			want: time.Date(1966, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "keeps the calendar date of the original location",
			in:   time.Date(1971, 1, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			want: time.Date(1971, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, time.Time(domain.DateOf(tt.in)))
		})
	}
}

func TestDayBefore(t *testing.T) {
	got := domain.DayBefore(time.Date(1971, 1, 1, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(1970, 12, 31, 0, 0, 0, 0, time.UTC), time.Time(got))

	leap := domain.DayBefore(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), time.Time(leap))
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{name: "validation", err: domain.Validationf("bad %s", "input"), kind: domain.ErrValidation, message: "bad input"},
		{name: "not found", err: domain.NotFoundf("no %d", 7), kind: domain.ErrNotFound, message: "no 7"},
		{name: "conflict", err: domain.Conflictf("dup"), kind: domain.ErrConflict, message: "dup"},
		{name: "persistence", err: domain.Persistence("insert duty", cause), kind: domain.ErrPersistence, message: "insert duty: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}

	assert.ErrorIs(t, domain.Persistence("op", cause), cause)
	assert.NotErrorIs(t, domain.NotFoundf("x"), domain.ErrConflict)
}

func TestLookup(t *testing.T) {
	found := domain.Found("neil")
	v, ok := found.Get()
	assert.True(t, ok)
	assert.Equal(t, "neil", v)

	missing := domain.NotFound[string]()
	assert.False(t, missing.IsFound())
}

func TestProject(t *testing.T) {
	p := &domain.Person{ID: 3, Name: "Sally Ride"}

	bare := domain.Project(p, nil)
	assert.Equal(t, int64(3), bare.PersonID)
	assert.Empty(t, bare.CurrentRank)
	assert.Nil(t, bare.CareerStartDate)
	assert.Nil(t, bare.CareerEndDate)

	start := datatypes.Date(time.Date(1978, 1, 16, 0, 0, 0, 0, time.UTC))
	full := domain.Project(p, &domain.AstronautDetail{
		PersonID:         3,
		CurrentRank:      "Mission Specialist",
		CurrentDutyTitle: "Commander",
		CareerStartDate:  start,
	})
	assert.Equal(t, "Mission Specialist", full.CurrentRank)
	assert.Equal(t, "Commander", full.CurrentDutyTitle)
	if assert.NotNil(t, full.CareerStartDate) {
		assert.Equal(t, start, *full.CareerStartDate)
	}
	assert.Nil(t, full.CareerEndDate)
}
