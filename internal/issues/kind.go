// Package issues models the chat-message-to-issue workflow: drafts built from
// chat messages, the short-lived draft store, the repository set, the custom
// identifiers threaded through select menus and modals, and the modal forms.
package issues

import "strings"

// Kind classifies a draft as a bug report or a feature request.
type Kind string

const (
	KindBug     Kind = "bug"
	KindFeature Kind = "feature"
)

// Context menu command names.
const (
	CommandBugReport      = "Create bug report"
	CommandFeatureRequest = "Create feature request"
)

// Tracker labels applied per kind.
const (
	LabelBug         = "bug"
	LabelEnhancement = "enhancement"
)

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBug, KindFeature:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

// KindForCommand classifies a context menu command name.
func KindForCommand(commandName string) Kind {
	if strings.Contains(strings.ToLower(commandName), "feature") {
		return KindFeature
	}
	return KindBug
}

// Label returns the tracker label for k.
func (k Kind) Label() string {
	if k == KindFeature {
		return LabelEnhancement
	}
	return LabelBug
}
