package githubapi

import (
	"errors"
	"fmt"
)

// IssueRequest describes an issue to open.
type IssueRequest struct {
	// Repo is the repository name under the client's owner.
	Repo string
	// Title is the issue title.
	Title string
	// Body is the raw markdown body.
	Body string
	// Labels are label names applied on creation.
	Labels []string
}

// Issue is the subset of a created issue the bot reads back.
type Issue struct {
	// Number is the issue number within the repository.
	Number int
	// URL is the canonical web URL of the issue.
	URL string
	// Title is the stored title.
	Title string
}

// TrackerError indicates that the issue tracker rejected or failed a call.
type TrackerError struct {
	// Owner is the repository owner the call targeted.
	Owner string
	// Repo is the repository name the call targeted.
	Repo string
	// StatusCode is the HTTP status returned, zero when no response arrived.
	StatusCode int
	// RateLimited is set when the tracker reported an exhausted rate limit.
	RateLimited bool
	// Err is the underlying failure.
	Err error
}

func (e *TrackerError) Error() string {
	if e == nil {
		return "issue tracker error"
	}
	target := e.Repo
	if e.Owner != "" && e.Repo != "" {
		target = e.Owner + "/" + e.Repo
	}
	switch {
	case e.RateLimited:
		return fmt.Sprintf("create issue in %s: rate limited", target)
	case e.StatusCode != 0:
		return fmt.Sprintf("create issue in %s: status %d: %v", target, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("create issue in %s: %v", target, e.Err)
	}
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}

// IsTrackerError reports whether err originates from the issue tracker.
func IsTrackerError(err error) bool {
	var target *TrackerError
	return errors.As(err, &target)
}
