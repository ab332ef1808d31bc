package jira

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mootimer/daemon/internal/domain"
)

func TestAssignedIssuesParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Basic dXNlcjp0b2tlbg==", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"issues":[{"key":"PROJ-1","fields":{"summary":"Fix bug","status":{"name":"In Progress"}}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Auth{Username: "user", APIToken: "token"})
	issues, err := c.AssignedIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 1)
	require.Equal(t, "PROJ-1", issues[0].Key)
}

func TestAssignedIssuesRejectsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Auth{Username: "user", APIToken: "bad"})
	_, err := c.AssignedIssues(context.Background())
	require.Error(t, err)
	code, ok := domain.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeValidation, code)
}

func TestIssueAsTask(t *testing.T) {
	issue := Issue{Key: "PROJ-2", Fields: Fields{Summary: "Write docs", Status: Status{Name: "To Do"}}}
	task, err := issue.AsTask("https://example.atlassian.net")
	require.NoError(t, err)
	require.Equal(t, domain.TaskSourceJira, task.Source)
	require.Equal(t, "https://example.atlassian.net/browse/PROJ-2", *task.URL)
}
