package storytests

import (
	"net/http"

	"github.com/storyspoiler/story-contract-tests/client"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireStatus fails the test and immediately exits if the response did not have the expected
// status. Nothing else about a response is worth checking once its status is wrong.
func (t *T) RequireStatus(resp client.Response, expected int) {
	if resp.StatusCode != expected {
		require.Fail(t, "unexpected HTTP status",
			"expected %d %s but got %s", expected, http.StatusText(expected), resp)
	}
}

// AssertBodyContains records a failure if the response body does not contain the text.
func (t *T) AssertBodyContains(resp client.Response, text string) bool {
	return assert.Contains(t, string(resp.Body), text, "response body did not contain expected text")
}

// StringField returns a string property of a JSON object response, or "" if the body is not an
// object or the property is missing or not a string.
func (t *T) StringField(resp client.Response, name string) string {
	return resp.JSON().GetByKey(name).StringValue()
}

// RequireStringField returns a string property of a JSON object response. The test fails and
// immediately exits if the property is missing or empty.
func (t *T) RequireStringField(resp client.Response, name string) string {
	value := resp.JSON()
	require.Equal(t, ldvalue.ObjectType, value.Type(), "response body was not a JSON object: %s", resp)
	s := value.GetByKey(name).StringValue()
	require.NotEmpty(t, s, "response property %q should not be empty: %s", name, resp)
	return s
}

// RequireNonEmptyArray checks that the response body is a JSON array with at least one element,
// and returns the number of elements. The test fails and immediately exits otherwise.
func (t *T) RequireNonEmptyArray(resp client.Response) int {
	value := resp.JSON()
	require.Equal(t, ldvalue.ArrayType, value.Type(), "response body was not a JSON array: %s", resp)
	require.NotZero(t, value.Count(), "response array should not be empty")
	return value.Count()
}
