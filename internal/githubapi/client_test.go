package githubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meadtools/meadbot/internal/logging"
)

type createdBody struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(logging.Discard(), "secret-token", "meadtools", WithBaseURL(ts.URL))
	require.NoError(t, err)
	return c
}

func TestCreateIssue_Success(t *testing.T) {
	var calls atomic.Int32
	var got createdBody
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/meadtools/meadtools-taplist/issues", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number":42,"title":"Broken","html_url":"https://github.com/meadtools/meadtools-taplist/issues/42"}`))
	})

	issue, err := c.CreateIssue(context.Background(), IssueRequest{
		Repo:   "meadtools-taplist",
		Title:  "Broken",
		Body:   "details",
		Labels: []string{"bug"},
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, "https://github.com/meadtools/meadtools-taplist/issues/42", issue.URL)
	assert.Equal(t, createdBody{Title: "Broken", Body: "details", Labels: []string{"bug"}}, got)
}

func TestCreateIssue_RemoteFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := c.CreateIssue(context.Background(), IssueRequest{Repo: "missing", Title: "t"})

	require.Error(t, err)
	assert.True(t, IsTrackerError(err))
	var terr *TrackerError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	assert.Equal(t, "missing", terr.Repo)
	assert.Contains(t, err.Error(), "meadtools/missing")
}

func TestCreateIssue_ValidatesInput(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	})

	_, err := c.CreateIssue(context.Background(), IssueRequest{Repo: "meadtools", Title: "  "})
	assert.True(t, IsTrackerError(err))
	_, err = c.CreateIssue(context.Background(), IssueRequest{Title: "t"})
	assert.True(t, IsTrackerError(err))
	assert.Equal(t, int32(0), calls.Load())
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(nil, "token", " ")
	assert.Error(t, err)
	_, err = NewClient(nil, "", "meadtools")
	assert.Error(t, err)

	c, err := NewClient(nil, "token", "meadtools")
	require.NoError(t, err)
	assert.Equal(t, "meadtools", c.Owner())
}

func TestTrackerError_Message(t *testing.T) {
	err := &TrackerError{Owner: "o", Repo: "r", RateLimited: true}
	assert.Equal(t, "create issue in o/r: rate limited", err.Error())
	assert.False(t, IsTrackerError(assert.AnError))
}
