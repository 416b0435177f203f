package issues

import (
	"fmt"
	"regexp"
	"strings"
)

// platformHost is the chat platform host used in back-links.
const platformHost = "discord.com"

// backLinkPattern matches back-links embedded in issue bodies. Changing the
// link format in BackLink requires updating this pattern in step.
var backLinkPattern = regexp.MustCompile(`https://discord\.com/channels/(\d+)/(\d+)/(\d+)`)

// Draft is a pending issue awaiting repository selection and a title.
type Draft struct {
	Kind Kind
	Body string
}

// Attachment is a file attached to a chat message.
type Attachment struct {
	URL         string
	ContentType string
	Description string
}

// SourceMessage is the chat message an issue is created from.
type SourceMessage struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	Content     string
	Attachments []Attachment
}

// MessageRef identifies a chat message referenced by a back-link.
type MessageRef struct {
	GuildID   string
	ChannelID string
	MessageID string
}

// BackLink returns the chat link pointing at the message.
func BackLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://%s/channels/%s/%s/%s", platformHost, guildID, channelID, messageID)
}

// FindBackLink extracts the first back-link in body.
func FindBackLink(body string) (MessageRef, bool) {
	m := backLinkPattern.FindStringSubmatch(body)
	if m == nil {
		return MessageRef{}, false
	}
	return MessageRef{GuildID: m[1], ChannelID: m[2], MessageID: m[3]}, true
}

// RenderAttachment renders a single attachment as a markdown line.
func RenderAttachment(a Attachment) string {
	ct := strings.ToLower(strings.TrimSpace(a.ContentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return fmt.Sprintf("![%s](%s)", orDefault(a.Description, "image"), a.URL)
	case strings.HasPrefix(ct, "video/"):
		return fmt.Sprintf("[📹 %s](%s)", orDefault(a.Description, "Watch video"), a.URL)
	default:
		return fmt.Sprintf("[📎 %s](%s)", orDefault(a.Description, "Download file"), a.URL)
	}
}

// backLinkTrailer starts the back-link line that closes every draft body.
const backLinkTrailer = "\n\n[Original Message]("

// FitBody shortens body to at most limit runes. The quoted content and the
// attachment lines are cut first; the closing back-link line is kept whole so
// FindBackLink still matches the shortened body.
func FitBody(body string, limit int) string {
	if len([]rune(body)) <= limit {
		return body
	}
	idx := strings.LastIndex(body, backLinkTrailer)
	if idx < 0 {
		return truncate(body, limit)
	}
	head, tail := body[:idx], body[idx:]
	keep := limit - len([]rune(tail))
	if keep < 0 {
		return truncate(tail, limit)
	}
	return truncate(head, keep) + tail
}

// BuildDraft assembles the draft body for msg: the quoted message text, one
// line per attachment in order, then the back-link.
func BuildDraft(kind Kind, msg SourceMessage) Draft {
	var b strings.Builder
	if msg.Content != "" {
		b.WriteString(quote(msg.Content))
	}
	b.WriteString("\n\n")
	for _, a := range msg.Attachments {
		b.WriteString("\n")
		b.WriteString(RenderAttachment(a))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "[Original Message](%s)", BackLink(msg.GuildID, msg.ChannelID, msg.MessageID))
	return Draft{Kind: kind, Body: b.String()}
}

func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
