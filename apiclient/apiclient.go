// Package apiclient talks HTTP/JSON to a remote story service, implementing
// the snooze.Service boundary.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/hacksnooze/snooze"
)

// A Client is responsible for interacting with the remote story service over
// HTTP, against a fixed base endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// New returns a Client for the given base URL, "https://example.com" format,
// without a trailing slash.
func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
		logger:  logger.With().Str("component", "apiclient").Logger(),
	}
}

func (c *Client) ListStories() ([]map[string]interface{}, error) {
	body, err := c.do("GET", "/stories", nil, false)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Stories []map[string]interface{} `json:"stories"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("cannot decode stories response: %w", err)
	}

	return envelope.Stories, nil
}

func (c *Client) CreateStory(token string, sub snooze.Submission) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"token": token,
		"story": map[string]string{
			"title":  sub.Title,
			"author": sub.Author,
			"url":    sub.URL,
		},
	}

	body, err := c.do("POST", "/stories", payload, false)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Story map[string]interface{} `json:"story"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("cannot decode story response: %w", err)
	}

	return envelope.Story, nil
}

func (c *Client) DeleteStory(token string, storyID string) error {
	payload := map[string]interface{}{"token": token}
	_, err := c.do("DELETE", "/stories/"+url.PathEscape(storyID), payload, false)
	return err
}

func (c *Client) Signup(username, password, name string) (map[string]interface{}, string, error) {
	payload := map[string]interface{}{
		"user": map[string]string{
			"username": username,
			"password": password,
			"name":     name,
		},
	}

	body, err := c.do("POST", "/signup", payload, true)
	if err != nil {
		return nil, "", err
	}

	return decodeUserAndToken(body)
}

func (c *Client) Login(username, password string) (map[string]interface{}, string, error) {
	payload := map[string]interface{}{
		"user": map[string]string{
			"username": username,
			"password": password,
		},
	}

	body, err := c.do("POST", "/login", payload, true)
	if err != nil {
		return nil, "", err
	}

	return decodeUserAndToken(body)
}

func (c *Client) FetchUser(token, username string) (map[string]interface{}, error) {
	path := "/users/" + url.PathEscape(username) + "?token=" + url.QueryEscape(token)
	body, err := c.do("GET", path, nil, false)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		User map[string]interface{} `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("cannot decode user response: %w", err)
	}

	return envelope.User, nil
}

func (c *Client) AddFavorite(token, username, storyID string) error {
	payload := map[string]interface{}{"token": token}
	_, err := c.do("POST", c.favoritePath(username, storyID), payload, false)
	return err
}

func (c *Client) RemoveFavorite(token, username, storyID string) error {
	payload := map[string]interface{}{"token": token}
	_, err := c.do("DELETE", c.favoritePath(username, storyID), payload, false)
	return err
}

func (c *Client) favoritePath(username, storyID string) string {
	return "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
}

// do performs one exchange with the service and returns the raw response
// body. Rejected credentials become *snooze.AuthError; any other non-2xx
// response or transport failure comes back as a plain error for the model to
// wrap. There is no retrying: each call fails at most once.
func (c *Client) do(method, path string, payload interface{}, credsCall bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Calling story service")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	c.logger.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("Service rejected request")

	reason := errorMessage(body, http.StatusText(resp.StatusCode))
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, snooze.AuthFailed(reason, nil)
	case credsCall && resp.StatusCode >= 400 && resp.StatusCode < 500:
		// signup and login rejections, a duplicate username or a bad
		// password, carry the server's reason
		return nil, snooze.AuthFailed(reason, nil)
	default:
		return nil, fmt.Errorf("unexpected status %d: %v", resp.StatusCode, reason)
	}
}

// decodeUserAndToken splits the {user, token} envelope of signup and login
// responses.
func decodeUserAndToken(body []byte) (map[string]interface{}, string, error) {
	var envelope struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("cannot decode user response: %w", err)
	}

	return envelope.User, envelope.Token, nil
}

// errorMessage digs the human-readable reason out of an error response body,
// falling back to the given default when the body has none.
func errorMessage(body []byte, fallback string) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	return fallback
}
