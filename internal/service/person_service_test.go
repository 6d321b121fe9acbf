package service_test

import (
	"context"
	"testing"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonService_CreatePerson(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing string
		input    string
		wantErr  error
	}{
		{
			name:  "successful creation",
			input: "Neil Armstrong",
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "whitespace name",
			input:   "   ",
			wantErr: domain.ErrValidation,
		},
		{
			name:     "duplicate name",
			existing: "Neil Armstrong",
			input:    "Neil Armstrong",
			wantErr:  domain.ErrConflict,
		},
		{
			name:     "duplicate name in another case",
			existing: "Neil Armstrong",
			input:    "NEIL armstrong",
			wantErr:  domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := testutil.NewMemoryRepos()
			services, m := testutil.NewTestServices(repos, testutil.TestConfig())

			if tt.existing != "" {
				testutil.NewPersonBuilder().WithName(tt.existing).Build(t, repos)
			}

			person, err := services.Person.CreatePerson(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, person)
				assert.Equal(t, 0.0, promtestutil.ToFloat64(m.PeopleCreated))
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, person.ID)
			assert.Equal(t, tt.input, person.Name)
			assert.Equal(t, 1.0, promtestutil.ToFloat64(m.PeopleCreated))
		})
	}
}

func TestPersonService_CreatePerson_ConflictMessage(t *testing.T) {
	repos := testutil.NewMemoryRepos()
	services, _ := testutil.NewTestServices(repos, testutil.TestConfig())
	ctx := context.Background()

	_, err := services.Person.CreatePerson(ctx, "Sally Ride")
	require.NoError(t, err)

	_, err = services.Person.CreatePerson(ctx, "sally ride")
	require.Error(t, err)
	assert.Equal(t, "A person already exists with name matching 'sally ride'", err.Error())
}

func TestPersonService_CreateThenLookupAnyCase(t *testing.T) {
	repos := testutil.NewMemoryRepos()
	services, _ := testutil.NewTestServices(repos, testutil.TestConfig())
	ctx := context.Background()

	created, err := services.Person.CreatePerson(ctx, "Valentina Tereshkova")
	require.NoError(t, err)

	for _, name := range []string{"Valentina Tereshkova", "valentina tereshkova", "VALENTINA TERESHKOVA"} {
		result, err := services.Query.GetPersonByName(ctx, name)
		require.NoError(t, err)

		person, ok := result.Get()
		require.True(t, ok, "lookup %q", name)
		assert.Equal(t, created.ID, person.PersonID)
	}
}

func TestPersonService_RenamePerson(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		currentName string
		newName     string
		wantErr     error
	}{
		{
			name:        "successful rename",
			currentName: "John Glenn",
			newName:     "John H. Glenn",
		},
		{
			name:        "current name matched ignoring case",
			currentName: "JOHN GLENN",
			newName:     "John H. Glenn",
		},
		{
			name:        "rename to a different casing of itself",
			currentName: "John Glenn",
			newName:     "JOHN GLENN",
		},
		{
			name:        "empty current name",
			currentName: "",
			newName:     "John H. Glenn",
			wantErr:     domain.ErrValidation,
		},
		{
			name:        "empty new name",
			currentName: "John Glenn",
			newName:     " ",
			wantErr:     domain.ErrValidation,
		},
		{
			name:        "unknown person",
			currentName: "Yuri Gagarin",
			newName:     "Yuri A. Gagarin",
			wantErr:     domain.ErrNotFound,
		},
		{
			name:        "new name taken by someone else",
			currentName: "John Glenn",
			newName:     "scott carpenter",
			wantErr:     domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := testutil.NewMemoryRepos()
			services, m := testutil.NewTestServices(repos, testutil.TestConfig())

			glenn := testutil.NewPersonBuilder().WithName("John Glenn").Build(t, repos)
			testutil.NewPersonBuilder().WithName("Scott Carpenter").Build(t, repos)

			id, err := services.Person.RenamePerson(ctx, tt.currentName, tt.newName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0.0, promtestutil.ToFloat64(m.PeopleRenamed))

				// nothing changed
				person, err := repos.Person.GetByName(ctx, "John Glenn")
				require.NoError(t, err)
				assert.Equal(t, "John Glenn", person.Name)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, glenn.ID, id)
			assert.Equal(t, 1.0, promtestutil.ToFloat64(m.PeopleRenamed))

			person, err := repos.Person.GetByName(ctx, tt.newName)
			require.NoError(t, err)
			assert.Equal(t, glenn.ID, person.ID)
			assert.Equal(t, tt.newName, person.Name)
		})
	}
}

func TestPersonService_RenamePerson_NotFoundMessage(t *testing.T) {
	repos := testutil.NewMemoryRepos()
	services, _ := testutil.NewTestServices(repos, testutil.TestConfig())

	_, err := services.Person.RenamePerson(context.Background(), "Nobody", "Somebody")
	require.Error(t, err)
	assert.Equal(t, "No person was found matching name 'Nobody'", err.Error())
}
