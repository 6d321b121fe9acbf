package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"github.com/dom/stargate-tracker/internal/repository/postgres"
	"github.com/dom/stargate-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAstronautDetailRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	person := testutil.NewPersonBuilder().WithName("Alan Shepard").Build(t, repos)

	_, err := repos.Detail.GetByPersonID(ctx, person.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	detail := &domain.AstronautDetail{
		PersonID:         person.ID,
		CurrentRank:      "CDR",
		CurrentDutyTitle: "Pilot",
		CareerStartDate:  domain.DateOf(testutil.Date(1959, 4, 9)),
	}
	require.NoError(t, repos.Detail.Create(ctx, detail))

	end := domain.DateOf(testutil.Date(1974, 7, 31))
	detail.CurrentDutyTitle = "RETIRED"
	detail.CareerEndDate = &end
	require.NoError(t, repos.Detail.Update(ctx, detail))

	got, err := repos.Detail.GetByPersonID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "RETIRED", got.CurrentDutyTitle)
	testutil.AssertDate(t, testutil.Date(1959, 4, 9), got.CareerStartDate)
	testutil.AssertDatePtr(t, testutil.Date(1974, 7, 31), got.CareerEndDate)

	// one detail per person
	err = repos.Detail.Create(ctx, &domain.AstronautDetail{
		PersonID:        person.ID,
		CareerStartDate: domain.DateOf(testutil.Date(1960, 1, 1)),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAstronautDutyRepository_OpenDutyByInsertionOrder(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	person := testutil.NewPersonBuilder().
		WithName("John Young").
		WithDuty("CAPT", "Commander", testutil.Date(1981, 4, 12)).
		WithDuty("LT", "Pilot", testutil.Date(1965, 3, 23)).
		Build(t, repos)

	open, err := repos.Duty.GetOpenByPersonID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", open.DutyTitle)

	end := domain.DayBefore(testutil.Date(1972, 4, 16))
	open.DutyEndDate = &end
	require.NoError(t, repos.Duty.Update(ctx, open))

	open, err = repos.Duty.GetOpenByPersonID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Commander", open.DutyTitle)

	duties, err := repos.Duty.ListByPersonID(ctx, person.ID)
	require.NoError(t, err)
	require.Len(t, duties, 2)
	assert.Greater(t, duties[0].ID, duties[1].ID)
	assert.Equal(t, "Pilot", duties[0].DutyTitle)
	testutil.AssertDatePtr(t, testutil.Date(1972, 4, 15), duties[0].DutyEndDate)

	none, err := repos.Duty.ListByPersonID(ctx, person.ID+1000)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAstronautDutyRepository_GetByTitleAndStart(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	person := testutil.NewPersonBuilder().
		WithName("Jim Lovell").
		WithDuty("CAPT", "Commander", testutil.Date(1970, 4, 11)).
		Build(t, repos)

	tests := []struct {
		name    string
		title   string
		start   time.Time
		wantErr error
	}{
		{name: "same title and midnight start", title: "Commander", start: testutil.Date(1970, 4, 11)},
		{name: "same day, later hour", title: "Commander", start: testutil.Date(1970, 4, 11).Add(13 * time.Hour), wantErr: repository.ErrNotFound},
		{name: "same day, one minute past", title: "Commander", start: testutil.Date(1970, 4, 11).Add(time.Minute), wantErr: repository.ErrNotFound},
		{name: "local midnight in another zone", title: "Commander", start: time.Date(1970, 4, 11, 0, 0, 0, 0, time.FixedZone("CST", -6*3600)), wantErr: repository.ErrNotFound},
		{name: "same instant in another zone", title: "Commander", start: time.Date(1970, 4, 10, 18, 0, 0, 0, time.FixedZone("CST", -6*3600))},
		{name: "other title", title: "Pilot", start: testutil.Date(1970, 4, 11), wantErr: repository.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repos.Duty.GetByTitleAndStart(ctx, person.ID, tt.title, tt.start)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTxRunner_RollsBack(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.Tx.RunInTx(ctx, func(tx *repository.Repositories) error {
		if err := tx.Person.Create(ctx, &domain.Person{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.Person.GetByName(ctx, "Ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repos.Tx.RunInTx(ctx, func(tx *repository.Repositories) error {
		return tx.Person.Create(ctx, &domain.Person{Name: "Pete Conrad"})
	})
	require.NoError(t, err)

	_, err = repos.Person.GetByName(ctx, "pete conrad")
	assert.NoError(t, err)
}
