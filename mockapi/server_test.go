package mockapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/storyspoiler/story-contract-tests/client"
	"github.com/storyspoiler/story-contract-tests/servicedef"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withAuthenticatedClient(t *testing.T, action func(*Server, *client.APIClient)) {
	s := NewServer("user", "pass", nil)
	httphelpers.WithServer(s, func(server *httptest.Server) {
		c := client.NewAPIClient(server.URL, time.Second, nil)
		token, err := c.Authenticate("user", "pass")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		action(s, c)
	})
}

func TestAuthenticationIssuesSignedToken(t *testing.T) {
	withAuthenticatedClient(t, func(s *Server, c *client.APIClient) {
		info := client.InspectToken(c.Token())
		assert.True(t, info.IsJWT)
		assert.Equal(t, "user", info.Subject)
		assert.True(t, info.ExpiresAt.After(time.Now()))
	})
}

func TestAuthenticationWithWrongPassword(t *testing.T) {
	httphelpers.WithServer(NewServer("user", "pass", nil), func(server *httptest.Server) {
		c := client.NewAPIClient(server.URL, time.Second, nil)
		token, err := c.Authenticate("user", "wrong")
		require.NoError(t, err)
		assert.Equal(t, "", token)
	})
}

func TestStoryEndpointsRequireValidToken(t *testing.T) {
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("not the server's key"))
	require.NoError(t, err)

	httphelpers.WithServer(NewServer("user", "pass", nil), func(server *httptest.Server) {
		for name, header := range map[string]string{
			"no header":      "",
			"not bearer":     "Basic dXNlcjpwYXNz",
			"garbage":        "Bearer xyz",
			"wrong key used": "Bearer " + forged,
		} {
			t.Run(name, func(t *testing.T) {
				req, _ := http.NewRequest("GET", server.URL+servicedef.AllStoriesPath, nil)
				if header != "" {
					req.Header.Set("Authorization", header)
				}
				resp, err := http.DefaultClient.Do(req)
				require.NoError(t, err)
				_ = resp.Body.Close()
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		}
	})
}

func TestStoryLifecycle(t *testing.T) {
	withAuthenticatedClient(t, func(s *Server, c *client.APIClient) {
		resp, err := c.Post(servicedef.CreateStoryPath,
			servicedef.StoryParams{Title: "New story", Description: "Malko skuchno", URL: "http://123.png"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, string(resp.Body), servicedef.MessageCreated)
		id := resp.JSON().GetByKey("storyId").StringValue()
		require.NotEmpty(t, id)

		resp, err = c.Put(servicedef.EditStoryPath(id),
			servicedef.StoryParams{Title: "Updated story title", Description: "New desc"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(resp.Body), servicedef.MessageEdited)
		assert.Equal(t, []servicedef.Story{{ID: id, Title: "Updated story title", Description: "New desc"}},
			s.Stories())

		resp, err = c.Get(servicedef.AllStoriesPath)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, resp.JSON().Count())

		resp, err = c.Delete(servicedef.DeleteStoryPath(id))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(resp.Body), servicedef.MessageDeleted)
		assert.Empty(t, s.Stories())

		resp, err = c.Delete(servicedef.DeleteStoryPath(id))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(resp.Body), servicedef.MessageUnableToDelete)

		resp, err = c.Get(servicedef.AllStoriesPath)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(resp.Body))
	})
}

func TestCreateWithoutRequiredFields(t *testing.T) {
	withAuthenticatedClient(t, func(s *Server, c *client.APIClient) {
		resp, err := c.Post(servicedef.CreateStoryPath, map[string]string{"title": "", "description": ""})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, s.Stories())
	})
}

func TestNonexistentStory(t *testing.T) {
	withAuthenticatedClient(t, func(s *Server, c *client.APIClient) {
		resp, err := c.Put(servicedef.EditStoryPath("123"), servicedef.StoryParams{Title: "new title"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(resp.Body), servicedef.MessageNoSpoilers)

		resp, err = c.Delete(servicedef.DeleteStoryPath("123"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(resp.Body), servicedef.MessageUnableToDelete)
	})
}
