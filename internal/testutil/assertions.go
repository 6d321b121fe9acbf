package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertDate verifies a stored date against a calendar date
func AssertDate(t *testing.T, expected time.Time, actual datatypes.Date, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected.Format(time.DateOnly), time.Time(actual).UTC().Format(time.DateOnly), msgAndArgs...)
}

// AssertDatePtr is AssertDate for nullable dates
func AssertDatePtr(t *testing.T, expected time.Time, actual *datatypes.Date, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.NotNil(t, actual, msgAndArgs...) {
		return
	}
	AssertDate(t, expected, *actual, msgAndArgs...)
}
