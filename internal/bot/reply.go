package bot

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Reply answers a single interaction. The first answer uses the interaction
// response; once acknowledged, later answers are sent as follow-ups.
type Reply struct {
	session     Session
	interaction *discordgo.Interaction
	logger      *slog.Logger
	acked       bool
	// loading is set while a public deferred response awaits its first message.
	loading bool
}

func newReply(s Session, i *discordgo.Interaction, logger *slog.Logger) *Reply {
	return &Reply{session: s, interaction: i, logger: logger}
}

// Acknowledged reports whether the interaction has been answered or deferred.
func (r *Reply) Acknowledged() bool {
	return r.acked
}

// Respond sends resp as the interaction response.
func (r *Reply) Respond(resp *discordgo.InteractionResponse) error {
	if err := r.session.InteractionRespond(r.interaction, resp); err != nil {
		return err
	}
	r.acked = true
	return nil
}

// Defer acknowledges the interaction and shows a public loading state.
func (r *Reply) Defer() error {
	if err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}
	r.loading = true
	return nil
}

// Send posts a message, as the response or as a follow-up.
func (r *Reply) Send(data *discordgo.InteractionResponseData) error {
	if !r.acked {
		return r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
	}
	// The first follow-up would take over the public loading message and its
	// visibility, so an ephemeral message removes the loading message first.
	if r.loading && data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		if err := r.session.InteractionResponseDelete(r.interaction); err != nil {
			return err
		}
	}
	r.loading = false
	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content:    data.Content,
		Embeds:     data.Embeds,
		Components: data.Components,
		Flags:      data.Flags,
	})
	return err
}

// Text posts a public text message.
func (r *Reply) Text(content string) error {
	return r.Send(&discordgo.InteractionResponseData{Content: content})
}

// Ephemeral posts a text message only the invoking user can see.
func (r *Reply) Ephemeral(content string) error {
	return r.Send(&discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// BestEffort logs err from a reply attempt instead of propagating it.
func (r *Reply) BestEffort(err error) {
	if err != nil {
		r.logger.Warn("failed to deliver interaction reply", "interaction", r.interaction.ID, "error", err)
	}
}
