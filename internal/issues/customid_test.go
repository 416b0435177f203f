package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectCustomID_RoundTrip(t *testing.T) {
	id := SelectCustomID("12345")
	assert.Equal(t, "select_repo:12345", id)
	assert.True(t, IsSelectCustomID(id))

	ctx, err := ParseSelectCustomID(id)
	require.NoError(t, err)
	assert.Equal(t, "12345", ctx)
}

func TestParseSelectCustomID_Malformed(t *testing.T) {
	for _, id := range []string{"", "select_repo", "select_repo:", "other:1", "select_repo:1:2"} {
		_, err := ParseSelectCustomID(id)
		assert.ErrorIs(t, err, ErrMalformedCustomID, id)
	}
}

func TestParseModalCustomID(t *testing.T) {
	repos := NewRepositorySet(DefaultRepositories())

	kind, repo, err := ParseModalCustomID("bugModal:meadtools", repos)
	require.NoError(t, err)
	assert.Equal(t, KindBug, kind)
	assert.Equal(t, "meadtools", repo.Value)

	kind, repo, err = ParseModalCustomID(ModalCustomID(KindFeature, "meadtools-desktop"), repos)
	require.NoError(t, err)
	assert.Equal(t, KindFeature, kind)
	assert.Equal(t, "Desktop", repo.Label)
}

func TestParseModalCustomID_Rejects(t *testing.T) {
	repos := NewRepositorySet(DefaultRepositories())
	tests := []struct {
		id   string
		want error
	}{
		{"bugModal", ErrMalformedCustomID},
		{"bugModal:", ErrMalformedCustomID},
		{"bug:meadtools", ErrMalformedCustomID},
		{"bugModal:meadtools:extra", ErrMalformedCustomID},
		{"questionModal:meadtools", ErrUnknownKind},
		{"Modal:meadtools", ErrUnknownKind},
		{"featureModal:someone-else", ErrUnknownRepository},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, _, err := ParseModalCustomID(tt.id, repos)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsModalCustomID(t *testing.T) {
	assert.True(t, IsModalCustomID("bugModal:meadtools"))
	assert.False(t, IsModalCustomID("select_repo:1"))
	assert.False(t, IsModalCustomID("bugModal"))
}

func TestRepositorySet_PreservesOrder(t *testing.T) {
	set := NewRepositorySet(DefaultRepositories())
	list := set.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"meadtools", "meadtools-taplist", "meadtools-desktop"},
		[]string{list[0].Value, list[1].Value, list[2].Value})

	_, ok := set.Lookup("nope")
	assert.False(t, ok)
}
