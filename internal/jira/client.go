// Package jira is a minimal, optional import helper grounded on
// original_source/crates/mootimer-jira: it fetches issues assigned to the
// authenticated user and offers them as candidate tasks. Not wired into
// the daemon's default startup path (SPEC_FULL.md §S1) — a caller (a
// future mootimerctl subcommand, or a test) constructs a Client directly.
package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mootimer/daemon/internal/domain"
)

// Auth mirrors the original client's basic-auth header construction.
type Auth struct {
	Username string
	APIToken string
}

func (a Auth) header() string {
	creds := a.Username + ":" + a.APIToken
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}

// Issue is the subset of a JIRA issue this importer cares about.
type Issue struct {
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

type Fields struct {
	Summary     string  `json:"summary"`
	Description *string `json:"description,omitempty"`
	Status      Status  `json:"status"`
}

type Status struct {
	Name string `json:"name"`
}

// Client talks to a JIRA Cloud/Server REST API base URL.
type Client struct {
	baseURL    string
	auth       Auth
	httpClient *http.Client
}

func NewClient(baseURL string, auth Auth) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       auth,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Issues []Issue `json:"issues"`
}

// AssignedIssues fetches issues assigned to the authenticated user via the
// REST API's JQL search endpoint.
func (c *Client) AssignedIssues(ctx context.Context) ([]Issue, error) {
	q := url.Values{}
	q.Set("jql", "assignee=currentUser() AND resolution=Unresolved")

	reqURL := c.baseURL + "/rest/api/2/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("jira: building request: %w", err)
	}
	req.Header.Set("Authorization", c.auth.header())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.Validation("jira: authentication rejected")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jira: unexpected status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("jira: decoding response: %w", err)
	}

	slog.Debug("jira: fetched assigned issues", "count", len(out.Issues))
	return out.Issues, nil
}

// AsTask converts a JIRA issue into a candidate task, matching the source
// and url conventions the daemon's task domain type expects.
func (i Issue) AsTask(browseURL string) (*domain.Task, error) {
	t, err := domain.NewTask(fmt.Sprintf("[%s] %s", i.Key, i.Fields.Summary))
	if err != nil {
		return nil, err
	}
	t.Source = domain.TaskSourceJira
	sourceID := i.Key
	t.SourceID = &sourceID
	if i.Fields.Description != nil {
		t.Description = i.Fields.Description
	}
	if browseURL != "" {
		issueURL := strings.TrimRight(browseURL, "/") + "/browse/" + i.Key
		t.URL = &issueURL
	}
	return t, nil
}
