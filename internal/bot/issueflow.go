package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/githubapi"
	"github.com/meadtools/meadbot/internal/issues"
)

// User-facing messages of the issue workflow.
const (
	msgSelectRepository = "Select a repository for this issue:"
	msgContextExpired   = "Context expired or missing."
	msgUnknownRepo      = "That repository is not available. Please start again."
	msgInvalidForm      = "This form is no longer valid. Please start again."
	msgMissingTitle     = "Please provide a title for the issue."
	msgMissingTarget    = "Could not read the selected message."
)

// descriptionLookupTimeout bounds the message fetch for attachment
// descriptions; the context menu must be answered within a few seconds.
const descriptionLookupTimeout = 1500 * time.Millisecond

// handleContextMenu builds a draft from the target message, stores it under
// the interaction id and offers the repository choice.
func (rt *Router) handleContextMenu(ctx context.Context, r *Reply, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) error {
	var target *discordgo.Message
	if data.Resolved != nil {
		target = data.Resolved.Messages[data.TargetID]
	}
	if target == nil {
		r.BestEffort(r.Ephemeral(msgMissingTarget))
		return fmt.Errorf("context menu %q: target message %q not resolved", data.Name, data.TargetID)
	}

	guildID := i.GuildID
	if guildID == "" {
		guildID = target.GuildID
	}
	src := issues.SourceMessage{
		GuildID:   guildID,
		ChannelID: target.ChannelID,
		MessageID: target.ID,
		Content:   target.Content,
	}
	var descriptions map[string]string
	if len(target.Attachments) > 0 {
		descriptions = rt.attachmentDescriptions(ctx, target.ChannelID, target.ID)
	}
	for _, a := range target.Attachments {
		if a == nil {
			continue
		}
		src.Attachments = append(src.Attachments, issues.Attachment{
			URL:         a.URL,
			ContentType: a.ContentType,
			Description: descriptions[a.ID],
		})
	}

	draft := issues.BuildDraft(issues.KindForCommand(data.Name), src)
	rt.drafts.Put(i.ID, draft)
	rt.logger.Debug("issue draft stored", "interaction", i.ID, "kind", draft.Kind, "attachments", len(src.Attachments))

	repos := rt.repos.List()
	options := make([]discordgo.SelectMenuOption, 0, len(repos))
	for _, repo := range repos {
		options = append(options, discordgo.SelectMenuOption{Label: repo.Label, Value: repo.Value})
	}

	return r.Send(&discordgo.InteractionResponseData{
		Content: msgSelectRepository,
		Flags:   discordgo.MessageFlagsEphemeral,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    issues.SelectCustomID(i.ID),
					Placeholder: "Choose a repository",
					Options:     options,
				},
			}},
		},
	})
}

// rawMessage is the part of the message payload discordgo does not decode.
type rawMessage struct {
	Attachments []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"attachments"`
}

// attachmentDescriptions fetches the message payload and returns attachment
// descriptions by attachment id. Failures yield no descriptions.
func (rt *Router) attachmentDescriptions(ctx context.Context, channelID, messageID string) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, descriptionLookupTimeout)
	defer cancel()

	endpoint := discordgo.EndpointChannelMessage(channelID, messageID)
	body, err := rt.session.RequestWithBucketID(http.MethodGet, endpoint, nil,
		discordgo.EndpointChannelMessage(channelID, ""), discordgo.WithContext(ctx))
	if err != nil {
		rt.logger.Debug("attachment descriptions unavailable", "channel", channelID, "message", messageID, "error", err)
		return nil
	}
	var msg rawMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		rt.logger.Debug("attachment descriptions unreadable", "message", messageID, "error", err)
		return nil
	}
	out := make(map[string]string, len(msg.Attachments))
	for _, a := range msg.Attachments {
		if a.Description != "" {
			out[a.ID] = a.Description
		}
	}
	return out
}

// handleRepoSelect looks up the draft named by the select menu and shows the
// issue form for the chosen repository.
func (rt *Router) handleRepoSelect(_ context.Context, r *Reply, data discordgo.MessageComponentInteractionData) error {
	contextID, err := issues.ParseSelectCustomID(data.CustomID)
	if err != nil {
		r.BestEffort(r.Ephemeral(msgContextExpired))
		return err
	}
	if len(data.Values) == 0 {
		r.BestEffort(r.Ephemeral(msgUnknownRepo))
		return fmt.Errorf("select %q: no value chosen", data.CustomID)
	}
	repo, ok := rt.repos.Lookup(data.Values[0])
	if !ok {
		r.BestEffort(r.Ephemeral(msgUnknownRepo))
		return fmt.Errorf("select %q: %w: %q", data.CustomID, issues.ErrUnknownRepository, data.Values[0])
	}

	draft, ok := rt.drafts.Get(contextID)
	if !ok {
		r.BestEffort(r.Ephemeral(msgContextExpired))
		rt.logger.Info("issue draft missing", "context", contextID, "error", issues.ErrContextExpired)
		return nil
	}

	return r.Respond(issues.BuildModal(draft.Kind, draft.Body, repo.Value))
}

// handleModalSubmit creates the issue described by the submitted form.
func (rt *Router) handleModalSubmit(ctx context.Context, r *Reply, data discordgo.ModalSubmitInteractionData) error {
	kind, repo, err := issues.ParseModalCustomID(data.CustomID, rt.repos)
	if err != nil {
		r.BestEffort(r.Ephemeral(msgInvalidForm))
		return fmt.Errorf("modal submit: %w", err)
	}

	values := issues.ModalValues(data)
	title := strings.TrimSpace(values[issues.FieldTitle])
	if title == "" {
		r.BestEffort(r.Ephemeral(msgMissingTitle))
		return nil
	}

	// Issue creation can outlast the platform's initial response window.
	if err := r.Defer(); err != nil {
		return fmt.Errorf("defer modal response: %w", err)
	}

	issue, err := rt.tracker.CreateIssue(ctx, githubapi.IssueRequest{
		Repo:   repo.Value,
		Title:  title,
		Body:   values[issues.FieldDescription],
		Labels: []string{kind.Label()},
	})
	if err != nil {
		r.BestEffort(r.Ephemeral(trackerFailureMessage(err)))
		return err
	}

	r.BestEffort(r.Text("Issue created: " + issue.URL))
	return nil
}

func trackerFailureMessage(err error) string {
	var terr *githubapi.TrackerError
	if errors.As(err, &terr) && terr.RateLimited {
		return "Failed to create issue: the tracker is rate limiting requests, please try again later."
	}
	return "Failed to create issue: " + err.Error()
}
