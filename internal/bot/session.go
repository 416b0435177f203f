// Package bot wires chat interactions to the formula library, the yeast
// catalog and the issue workflow.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/githubapi"
	"github.com/meadtools/meadbot/internal/yeast"
)

// Session is the subset of *discordgo.Session used by the bot.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	RequestWithBucketID(method, urlStr string, data interface{}, bucketID string, options ...discordgo.RequestOption) ([]byte, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var _ Session = (*discordgo.Session)(nil)

// IssueCreator opens issues on the tracker.
type IssueCreator interface {
	CreateIssue(ctx context.Context, req githubapi.IssueRequest) (*githubapi.Issue, error)
}

// YeastCatalog serves the cached yeast catalog.
type YeastCatalog interface {
	All(ctx context.Context) ([]yeast.Yeast, error)
}
