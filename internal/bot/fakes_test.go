package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/githubapi"
	"github.com/meadtools/meadbot/internal/issues"
	"github.com/meadtools/meadbot/internal/logging"
	"github.com/meadtools/meadbot/internal/yeast"
)

type fakeSession struct {
	mu           sync.Mutex
	responses    []*discordgo.InteractionResponse
	followups    []*discordgo.WebhookParams
	overwritten  []*discordgo.ApplicationCommand
	appID        string
	guildID      string
	overwriteErr error
	deletes      int
	rawMessage   []byte
	rawErr       error
	requests     []string
}

func (s *fakeSession) InteractionResponseDelete(_ *discordgo.Interaction, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	return nil
}

func (s *fakeSession) RequestWithBucketID(method, urlStr string, _ interface{}, _ string, _ ...discordgo.RequestOption) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, method+" "+urlStr)
	if s.rawErr != nil {
		return nil, s.rawErr
	}
	if s.rawMessage == nil {
		return []byte(`{}`), nil
	}
	return s.rawMessage, nil
}

func (s *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
	return nil
}

func (s *fakeSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followups = append(s.followups, data)
	return &discordgo.Message{Content: data.Content}, nil
}

func (s *fakeSession) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overwriteErr != nil {
		return nil, s.overwriteErr
	}
	s.appID, s.guildID, s.overwritten = appID, guildID, commands
	return commands, nil
}

// lastContent returns the content of the most recent message, response or follow-up.
func (s *fakeSession) lastContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.followups); n > 0 {
		return s.followups[n-1].Content
	}
	if n := len(s.responses); n > 0 && s.responses[n-1].Data != nil {
		return s.responses[n-1].Data.Content
	}
	return ""
}

type fakeTracker struct {
	mu    sync.Mutex
	calls []githubapi.IssueRequest
	err   error
}

func (t *fakeTracker) CreateIssue(_ context.Context, req githubapi.IssueRequest) (*githubapi.Issue, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, req)
	if t.err != nil {
		return nil, t.err
	}
	return &githubapi.Issue{Number: 42, URL: "https://github.com/meadtools/" + req.Repo + "/issues/42", Title: req.Title}, nil
}

type fakeCatalog struct {
	yeasts []yeast.Yeast
	err    error
}

func (c *fakeCatalog) All(context.Context) ([]yeast.Yeast, error) {
	return c.yeasts, c.err
}

var errCatalogDown = errors.New("catalog unavailable")

type harness struct {
	session *fakeSession
	tracker *fakeTracker
	catalog *fakeCatalog
	drafts  *issues.DraftStore
	router  *Router
}

func newHarness() *harness {
	h := &harness{
		session: &fakeSession{},
		tracker: &fakeTracker{},
		catalog: &fakeCatalog{yeasts: testYeasts()},
		drafts:  issues.NewDraftStore(time.Minute),
	}
	logger := logging.Discard()
	h.router = NewRouter(RouterDeps{
		Logger:   logger,
		Session:  h.session,
		Registry: NewCommands(logger, h.catalog, "https://meadtools.com"),
		Drafts:   h.drafts,
		Repos:    issues.NewRepositorySet(issues.DefaultRepositories()),
		Tracker:  h.tracker,
	})
	return h
}

func (h *harness) handle(i *discordgo.Interaction) {
	h.router.Handle(context.Background(), i)
}

func testYeasts() []yeast.Yeast {
	return []yeast.Yeast{
		{ID: 1, Brand: "Lalvin", Name: "71B", NitrogenRequirement: "Low", Tolerance: "14", LowTemp: "59", HighTemp: "86"},
		{ID: 2, Brand: "Lalvin", Name: "EC-1118", NitrogenRequirement: "Low", Tolerance: "18", LowTemp: "50", HighTemp: "86"},
		{ID: 3, Brand: "Red Star", Name: "Premier Blanc", NitrogenRequirement: "Medium", Tolerance: "15", LowTemp: "59", HighTemp: "86"},
	}
}

func chatCommand(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:   "cmd-1",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        name,
			CommandType: discordgo.ChatApplicationCommand,
			Options:     opts,
		},
	}
}

func numberOpt(name string, v float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: v}
}

func stringOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v}
}
