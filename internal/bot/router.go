package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/issues"
)

// defaultHandlerTimeout bounds a single interaction handler, including its
// network calls.
const defaultHandlerTimeout = 30 * time.Second

// Router dispatches inbound interactions to exactly one handler.
type Router struct {
	logger   *slog.Logger
	session  Session
	registry *Registry
	drafts   *issues.DraftStore
	repos    *issues.RepositorySet
	tracker  IssueCreator
	timeout  time.Duration
}

// RouterDeps are the collaborators of a Router.
type RouterDeps struct {
	Logger   *slog.Logger
	Session  Session
	Registry *Registry
	Drafts   *issues.DraftStore
	Repos    *issues.RepositorySet
	Tracker  IssueCreator
	Timeout  time.Duration
}

// NewRouter constructs a Router from deps.
func NewRouter(deps RouterDeps) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &Router{
		logger:   logger,
		session:  deps.Session,
		registry: deps.Registry,
		drafts:   deps.Drafts,
		repos:    deps.Repos,
		tracker:  deps.Tracker,
		timeout:  timeout,
	}
}

// OnInteractionCreate is the discordgo event handler entry point. The gateway
// runs each event in its own goroutine.
func (rt *Router) OnInteractionCreate(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), rt.timeout)
	defer cancel()
	rt.Handle(ctx, ic.Interaction)
}

// Handle dispatches a single interaction.
func (rt *Router) Handle(ctx context.Context, i *discordgo.Interaction) {
	r := newReply(rt.session, i, rt.logger)
	logger := rt.logger.With("interaction", i.ID, "type", i.Type.String())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("interaction handler panicked", "panic", rec)
			if !r.Acknowledged() {
				r.BestEffort(r.Ephemeral("Something went wrong handling that request."))
			}
		}
	}()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if data.CommandType == discordgo.MessageApplicationCommand {
			err = rt.handleContextMenu(ctx, r, i, data)
			break
		}
		err = rt.handleCommand(ctx, r, data)
	case discordgo.InteractionApplicationCommandAutocomplete:
		err = rt.handleAutocomplete(ctx, r, i.ApplicationCommandData())
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if !issues.IsSelectCustomID(data.CustomID) {
			logger.Debug("ignoring unknown component", "custom_id", data.CustomID)
			return
		}
		err = rt.handleRepoSelect(ctx, r, data)
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		if !issues.IsModalCustomID(data.CustomID) {
			logger.Debug("ignoring unknown modal", "custom_id", data.CustomID)
			return
		}
		err = rt.handleModalSubmit(ctx, r, data)
	default:
		logger.Debug("ignoring interaction type")
		return
	}

	if err != nil {
		logger.Warn("interaction handler failed", "error", err)
	}
}

func (rt *Router) handleCommand(ctx context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
	cmd, ok := rt.registry.Lookup(data.Name)
	if !ok {
		r.BestEffort(r.Ephemeral("Unknown command."))
		return nil
	}
	return cmd.Handler(ctx, r, data)
}

func (rt *Router) handleAutocomplete(ctx context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
	cmd, ok := rt.registry.Lookup(data.Name)
	if !ok || cmd.Autocomplete == nil {
		return nil
	}
	return cmd.Autocomplete(ctx, r, data)
}
