package issues

import (
	"fmt"
	"strings"
)

const (
	selectRepoPrefix = "select_repo"
	modalSuffix      = "Modal"
)

// SelectCustomID returns the select menu custom id carrying contextID.
func SelectCustomID(contextID string) string {
	return selectRepoPrefix + ":" + contextID
}

// IsSelectCustomID reports whether id belongs to a repository select menu.
func IsSelectCustomID(id string) bool {
	return strings.HasPrefix(id, selectRepoPrefix+":")
}

// ParseSelectCustomID extracts the context id from a select menu custom id.
func ParseSelectCustomID(id string) (string, error) {
	prefix, contextID, ok := strings.Cut(id, ":")
	if !ok || prefix != selectRepoPrefix || contextID == "" || strings.Contains(contextID, ":") {
		return "", fmt.Errorf("%w: %q", ErrMalformedCustomID, id)
	}
	return contextID, nil
}

// ModalCustomID returns the modal custom id carrying kind and repository.
func ModalCustomID(kind Kind, repo string) string {
	return string(kind) + modalSuffix + ":" + repo
}

// IsModalCustomID reports whether id looks like an issue modal custom id.
func IsModalCustomID(id string) bool {
	head, _, ok := strings.Cut(id, ":")
	return ok && strings.HasSuffix(head, modalSuffix)
}

// ParseModalCustomID splits a modal custom id into kind and repository and
// checks both against the known kinds and repos.
func ParseModalCustomID(id string, repos *RepositorySet) (Kind, Repository, error) {
	head, repoName, ok := strings.Cut(id, ":")
	if !ok || repoName == "" || strings.Contains(repoName, ":") || !strings.HasSuffix(head, modalSuffix) {
		return "", Repository{}, fmt.Errorf("%w: %q", ErrMalformedCustomID, id)
	}
	kind, err := ParseKind(strings.TrimSuffix(head, modalSuffix))
	if err != nil {
		return "", Repository{}, fmt.Errorf("%w: %q", err, id)
	}
	repo, found := repos.Lookup(repoName)
	if !found {
		return "", Repository{}, fmt.Errorf("%w: %q", ErrUnknownRepository, repoName)
	}
	return kind, repo, nil
}
