package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository/postgres"
	"github.com/dom/stargate-tracker/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAuditLogRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAuditLogRepository(testDB.DB)
	ctx := context.Background()

	requestID := uuid.NewString()
	elapsed := int64(12)
	entries := []*domain.AuditLog{
		{RequestName: "CreatePerson", RequestIdentifier: requestID, Message: "[STARTING] CreatePerson", Timestamp: time.Now()},
		{RequestName: "CreatePerson", RequestIdentifier: requestID, Message: `[PROPS] {"name":"Neil"}`, Props: datatypes.JSON(`{"name":"Neil"}`), Timestamp: time.Now()},
		{RequestName: "CreatePerson", RequestIdentifier: requestID, Message: "[ENDED] CreatePerson", Timestamp: time.Now(), ElapsedMillis: &elapsed},
		{RequestName: "GetPeople", RequestIdentifier: uuid.NewString(), Message: "[STARTING] GetPeople", Timestamp: time.Now()},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
		assert.NotZero(t, e.ID)
	}

	got, err := repo.ListByRequest(ctx, requestID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "[STARTING] CreatePerson", got[0].Message)
	assert.JSONEq(t, `{"name":"Neil"}`, string(got[1].Props))
	require.NotNil(t, got[2].ElapsedMillis)
	assert.Equal(t, int64(12), *got[2].ElapsedMillis)
}
