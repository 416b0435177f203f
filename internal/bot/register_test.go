package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meadtools/meadbot/internal/issues"
	"github.com/meadtools/meadbot/internal/logging"
)

func TestRegisterCommands(t *testing.T) {
	s := &fakeSession{}
	registry := NewCommands(logging.Discard(), &fakeCatalog{}, "https://meadtools.com")

	err := RegisterCommands(logging.Discard(), s, "app-1", "guild-1", registry)

	require.NoError(t, err)
	assert.Equal(t, "app-1", s.appID)
	assert.Equal(t, "guild-1", s.guildID)

	var names []string
	for _, c := range s.overwritten {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"abv", "delle", "meadtools", "yeastinfo", issues.CommandBugReport, issues.CommandFeatureRequest}, names)
	assert.Equal(t, discordgo.ChatApplicationCommand, s.overwritten[0].Type)
	assert.Equal(t, discordgo.MessageApplicationCommand, s.overwritten[4].Type)
	assert.Equal(t, discordgo.MessageApplicationCommand, s.overwritten[5].Type)
}

func TestRegisterCommands_Global(t *testing.T) {
	s := &fakeSession{}

	require.NoError(t, RegisterCommands(logging.Discard(), s, "app-1", "", NewRegistry()))

	assert.Empty(t, s.guildID)
	assert.Len(t, s.overwritten, 2)
}

func TestRegisterCommands_Failure(t *testing.T) {
	s := &fakeSession{overwriteErr: errors.New("unauthorized")}

	err := RegisterCommands(logging.Discard(), s, "app-1", "", NewRegistry())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	r.MustAdd(abvCommand())

	assert.Error(t, r.Add(abvCommand()))
	assert.Error(t, r.Add(Command{Name: "nohandler"}))
	assert.Panics(t, func() { r.MustAdd(abvCommand()) })
	assert.Equal(t, []string{"abv"}, r.Names())
}

func TestYeastInfoCommand_Options(t *testing.T) {
	cmd := yeastInfoCommand(logging.Discard(), &fakeCatalog{})

	require.Len(t, cmd.Options, 2)
	assert.Len(t, cmd.Options[0].Choices, 5)
	assert.True(t, cmd.Options[1].Autocomplete)
	assert.NotNil(t, cmd.Autocomplete)
}

func TestNewCommands_NilCatalog(t *testing.T) {
	s := &fakeSession{}
	registry := NewCommands(logging.Discard(), nil, "https://meadtools.com")

	require.NoError(t, RegisterCommands(logging.Discard(), s, "app-1", "", registry))
	assert.Len(t, s.overwritten, 6)

	router := NewRouter(RouterDeps{
		Logger:   logging.Discard(),
		Session:  s,
		Registry: registry,
		Drafts:   issues.NewDraftStore(time.Minute),
		Repos:    issues.NewRepositorySet(issues.DefaultRepositories()),
		Tracker:  &fakeTracker{},
	})
	router.Handle(context.Background(), chatCommand("yeastinfo", stringOpt("brand", "Lalvin"), stringOpt("yeast", "1")))

	assert.Equal(t, "Error loading yeasts: "+errNoCatalog.Error(), s.lastContent())
}
