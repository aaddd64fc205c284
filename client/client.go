package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/storyspoiler/story-contract-tests/framework"
	"github.com/storyspoiler/story-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const maxLoggedBodyLength = 2000

// APIClient sends requests to the Story API. Once Authenticate has succeeded, every request it
// sends carries the access token as a bearer token.
//
// An APIClient is not safe for concurrent use; the test suite only ever uses it from one
// goroutine at a time.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     framework.Logger
}

// Response is the status and complete body of an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// NewAPIClient creates an APIClient for the API at baseURL. A zero timeout leaves it up to the
// transport.
func NewAPIClient(baseURL string, timeout time.Duration, logger framework.Logger) *APIClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &APIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// WithLogger returns a client that shares this one's connections and token but logs requests
// to a different logger.
func (c *APIClient) WithLogger(logger framework.Logger) *APIClient {
	c1 := *c
	if logger != nil {
		c1.logger = logger
	}
	return &c1
}

// BaseURL returns the API base URL without any trailing slash.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Token returns the access token obtained by Authenticate, or "" if there is none.
func (c *APIClient) Token() string {
	return c.token
}

// Authenticate logs in with the given credentials and returns the access token from the
// response. The token is "" if the response had no string accessToken property; that is not
// treated as an error here, since the API does not distinguish a failed login in any other way
// that callers could rely on.
func (c *APIClient) Authenticate(username, password string) (string, error) {
	params := servicedef.AuthenticationParams{Username: username, Password: password}
	resp, err := c.send(http.MethodPost, servicedef.AuthenticationPath, params, false)
	if err != nil {
		return "", err
	}
	token := resp.JSON().GetByKey("accessToken").StringValue()
	if token == "" {
		c.logger.Printf("Authentication as %q returned HTTP %d with no access token", username, resp.StatusCode)
		return "", nil
	}
	c.token = token
	if info := InspectToken(token); info.IsJWT {
		c.logger.Printf("Authenticated as %q; token subject %q, expires %s", username, info.Subject, info.ExpiresAtString())
	} else {
		c.logger.Printf("Authenticated as %q; token is not a JWT", username)
	}
	return token, nil
}

func (c *APIClient) Get(path string) (Response, error) {
	return c.Do(http.MethodGet, path, nil)
}

func (c *APIClient) Post(path string, body interface{}) (Response, error) {
	return c.Do(http.MethodPost, path, body)
}

func (c *APIClient) Put(path string, body interface{}) (Response, error) {
	return c.Do(http.MethodPut, path, body)
}

func (c *APIClient) Delete(path string) (Response, error) {
	return c.Do(http.MethodDelete, path, nil)
}

// Do sends a request to a path relative to the base URL. If body is non-nil it is sent as JSON.
// Any status code is a valid response; only transport failures are returned as errors.
func (c *APIClient) Do(method, path string, body interface{}) (Response, error) {
	return c.send(method, path, body, true)
}

func (c *APIClient) send(method, path string, body interface{}, authenticated bool) (Response, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return Response{}, fmt.Errorf("could not encode request body for %s %s: %w", method, url, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if data == nil {
		c.logger.Printf(">> %s %s", method, path)
	} else {
		c.logger.Printf(">> %s %s %s", method, path, truncate(string(data)))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("<< %s %s failed: %s", method, path, err)
		return Response{}, fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("error reading response body from %s %s: %w", method, url, err)
	}
	c.logger.Printf("<< HTTP %d %s", resp.StatusCode, truncate(string(respData)))

	return Response{StatusCode: resp.StatusCode, Body: respData}, nil
}

// Close releases any idle connections.
func (c *APIClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// JSON parses the body. It returns a null value if the body is not valid JSON.
func (r Response) JSON() ldvalue.Value {
	return ldvalue.Parse(r.Body)
}

func (r Response) String() string {
	return fmt.Sprintf("HTTP %d: %s", r.StatusCode, truncate(string(r.Body)))
}

func truncate(s string) string {
	if len(s) <= maxLoggedBodyLength {
		return s
	}
	n := maxLoggedBodyLength
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
