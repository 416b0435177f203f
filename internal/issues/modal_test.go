package issues

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modalInputs(t *testing.T, resp *discordgo.InteractionResponse) []discordgo.TextInput {
	t.Helper()
	var out []discordgo.TextInput
	for _, c := range resp.Data.Components {
		row, ok := c.(discordgo.ActionsRow)
		require.True(t, ok)
		require.Len(t, row.Components, 1)
		input, ok := row.Components[0].(discordgo.TextInput)
		require.True(t, ok)
		out = append(out, input)
	}
	return out
}

func TestBuildModal_Bug(t *testing.T) {
	resp := BuildModal(KindBug, "prefilled", "meadtools")

	assert.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	assert.Equal(t, "bugModal:meadtools", resp.Data.CustomID)
	assert.Equal(t, "Create bug Report", resp.Data.Title)

	inputs := modalInputs(t, resp)
	require.Len(t, inputs, 2)
	assert.Equal(t, FieldTitle, inputs[0].CustomID)
	assert.Equal(t, discordgo.TextInputShort, inputs[0].Style)
	assert.Empty(t, inputs[0].Value)
	assert.Equal(t, "Bug Report Title", inputs[0].Label)
	assert.Equal(t, FieldDescription, inputs[1].CustomID)
	assert.Equal(t, discordgo.TextInputParagraph, inputs[1].Style)
	assert.Equal(t, "prefilled", inputs[1].Value)
}

func TestBuildModal_Feature(t *testing.T) {
	resp := BuildModal(KindFeature, "", "meadtools-taplist")

	assert.Equal(t, "featureModal:meadtools-taplist", resp.Data.CustomID)
	assert.Equal(t, "Create feature request", resp.Data.Title)
	inputs := modalInputs(t, resp)
	assert.Equal(t, "Feature Request Description", inputs[1].Label)
}

func TestBuildModal_UnknownKindUsesGenericLabels(t *testing.T) {
	resp := BuildModal(Kind("question"), "", "meadtools")

	assert.Equal(t, "Create Issue", resp.Data.Title)
	inputs := modalInputs(t, resp)
	assert.Equal(t, "Issue Title", inputs[0].Label)
	assert.Equal(t, "Issue Description", inputs[1].Label)
}

func TestBuildModal_TruncatesLongPrefill(t *testing.T) {
	resp := BuildModal(KindBug, strings.Repeat("é", maxTextInputLength+10), "meadtools")
	inputs := modalInputs(t, resp)
	assert.Len(t, []rune(inputs[1].Value), maxTextInputLength)
}

func TestBuildModal_LongPrefillKeepsBackLink(t *testing.T) {
	draft := BuildDraft(KindBug, SourceMessage{
		GuildID:     "100",
		ChannelID:   "200",
		MessageID:   "300",
		Content:     strings.Repeat("x\n", 1000),
		Attachments: []Attachment{{URL: "https://cdn.example/a.png", ContentType: "image/png"}},
	})
	require.Greater(t, len([]rune(draft.Body)), maxTextInputLength)

	resp := BuildModal(KindBug, draft.Body, "meadtools")
	value := modalInputs(t, resp)[1].Value

	assert.Len(t, []rune(value), maxTextInputLength)
	assert.True(t, strings.HasPrefix(value, "> x\n> x"))
	assert.True(t, strings.HasSuffix(value, "\n\n[Original Message](https://discord.com/channels/100/200/300)"))
	ref, ok := FindBackLink(value)
	require.True(t, ok)
	assert.Equal(t, MessageRef{GuildID: "100", ChannelID: "200", MessageID: "300"}, ref)
}

func TestFitBody(t *testing.T) {
	tail := "\n\n[Original Message](https://discord.com/channels/1/2/3)"
	tests := []struct {
		name  string
		body  string
		limit int
		want  string
	}{
		{"fits", "> hi" + tail, 100, "> hi" + tail},
		{"cuts head", "> abcdef" + tail, len([]rune(tail)) + 4, "> ab" + tail},
		{"no back-link", "abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitBody(tt.body, tt.limit))
		})
	}
}

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "bugModal:meadtools",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: FieldTitle, Value: "Title"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: FieldDescription, Value: "Body"},
			}},
		},
	}

	got := ModalValues(data)

	assert.Equal(t, map[string]string{FieldTitle: "Title", FieldDescription: "Body"}, got)
}
