package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"

	"github.com/meadtools/meadbot/internal/issues"
	"github.com/meadtools/meadbot/internal/logging"
)

// Messenger is the subset of *discordgo.Session used to post close notices.
type Messenger interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Messenger = (*discordgo.Session)(nil)

// Handler processes tracker webhook deliveries.
type Handler struct {
	logger    *slog.Logger
	messenger Messenger
	secret    []byte
}

// NewHandler constructs a Handler. When secret is non-empty, deliveries must
// carry a valid signature.
func NewHandler(logger *slog.Logger, messenger Messenger, secret string) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{logger: logger, messenger: messenger, secret: []byte(secret)}
}

// Handle is the gin handler for the webhook route. Every delivery is
// acknowledged with 200 so the sender never retries.
func (h *Handler) Handle(c *gin.Context) {
	defer c.String(http.StatusOK, "ok")

	delivery := github.DeliveryID(c.Request)
	logger := h.logger.With("delivery", delivery)

	payload, err := github.ValidatePayload(c.Request, h.secret)
	if err != nil {
		logger.Warn("rejected webhook payload", "error", err)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(c.Request), payload)
	if err != nil {
		logger.Debug("ignoring webhook event", "event", github.WebHookType(c.Request), "error", err)
		return
	}

	issuesEvent, ok := event.(*github.IssuesEvent)
	if !ok {
		return
	}
	if err := h.handleIssuesEvent(c.Request.Context(), logger, issuesEvent); err != nil {
		logger.Warn("failed to announce closed issue", "error", err)
	}
}

func (h *Handler) handleIssuesEvent(ctx context.Context, logger *slog.Logger, ev *github.IssuesEvent) error {
	if ev.GetAction() != "closed" {
		return nil
	}
	issue := ev.GetIssue()
	link, ok := issues.FindBackLink(issue.GetBody())
	if !ok {
		logger.Debug("closed issue has no message link", "issue_url", issue.GetHTMLURL())
		return nil
	}

	logger = logger.With("channel", link.ChannelID, "message", link.MessageID, "issue_url", issue.GetHTMLURL())
	opt := discordgo.WithContext(ctx)

	channel, err := h.messenger.Channel(link.ChannelID, opt)
	if err != nil {
		return fmt.Errorf("fetch channel %s: %w", link.ChannelID, err)
	}
	if !isTextChannel(channel.Type) {
		logger.Info("linked channel is not text based", "channel_type", int(channel.Type))
		return nil
	}

	msg, err := h.messenger.ChannelMessage(channel.ID, link.MessageID, opt)
	if err != nil {
		return fmt.Errorf("fetch message %s: %w", link.MessageID, err)
	}

	if _, err := h.messenger.ChannelMessageSendReply(channel.ID, "GitHub issue closed: "+issue.GetHTMLURL(), msg.Reference(), opt); err != nil {
		return fmt.Errorf("reply to message %s: %w", msg.ID, err)
	}
	logger.Info("announced closed issue")
	return nil
}

func isTextChannel(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeDM,
		discordgo.ChannelTypeGroupDM,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	}
	return false
}
