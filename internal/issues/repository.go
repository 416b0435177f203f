package issues

// Repository is one entry of the static repository set.
type Repository struct {
	// Label is shown to the user in the select menu.
	Label string `yaml:"label" toml:"label"`
	// Value is the repository name on the tracker.
	Value string `yaml:"value" toml:"value"`
}

// DefaultRepositories returns the built-in repository set.
func DefaultRepositories() []Repository {
	return []Repository{
		{Label: "MeadTools", Value: "meadtools"},
		{Label: "Taplist", Value: "meadtools-taplist"},
		{Label: "Desktop", Value: "meadtools-desktop"},
	}
}

// RepositorySet is an ordered, lookup-friendly view over a repository list.
type RepositorySet struct {
	repos  []Repository
	byName map[string]Repository
}

// NewRepositorySet builds a RepositorySet preserving the order of repos.
func NewRepositorySet(repos []Repository) *RepositorySet {
	set := &RepositorySet{
		repos:  append([]Repository(nil), repos...),
		byName: make(map[string]Repository, len(repos)),
	}
	for _, r := range repos {
		set.byName[r.Value] = r
	}
	return set
}

// List returns the repositories in configured order.
func (s *RepositorySet) List() []Repository {
	return append([]Repository(nil), s.repos...)
}

// Lookup returns the repository whose value is name.
func (s *RepositorySet) Lookup(name string) (Repository, bool) {
	r, ok := s.byName[name]
	return r, ok
}
