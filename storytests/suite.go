package storytests

import (
	"errors"
	"fmt"

	"github.com/storyspoiler/story-contract-tests/client"
	"github.com/storyspoiler/story-contract-tests/config"
	"github.com/storyspoiler/story-contract-tests/framework"
)

// ErrNoAccessToken means that authentication completed without producing a token. Every request
// after that would be rejected by the API, so a run normally stops here.
var ErrNoAccessToken = errors.New("authentication did not return an access token")

// Authenticate logs in with the configured credentials, after which apiClient attaches the access
// token to every request. Unless allowEmptyToken is set, getting no token is an error.
func Authenticate(apiClient *client.APIClient, cfg config.Config, allowEmptyToken bool) error {
	token, err := apiClient.Authenticate(cfg.Username, cfg.Password)
	if err != nil {
		return fmt.Errorf("authentication request failed: %w", err)
	}
	if token == "" && !allowEmptyToken {
		return fmt.Errorf("%w (user %q)", ErrNoAccessToken, cfg.Username)
	}
	return nil
}

// RunTestSuite runs every test against the API that apiClient points to. The client should
// already be authenticated.
func RunTestSuite(
	apiClient *client.APIClient,
	cfg config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	s := &session{client: apiClient, config: cfg}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, session: s}

		t.Run("story", DoStoryLifecycleTests)
		t.Run("error paths", DoErrorPathTests)
	})
}
