package issues

import (
	"github.com/bwmarrin/discordgo"
)

// Modal field custom ids.
const (
	FieldTitle       = "issueTitle"
	FieldDescription = "issueDescription"
)

// maxTextInputLength is the platform's limit for a text input value.
const maxTextInputLength = 4000

// modalTemplate holds the static text of a modal per kind.
type modalTemplate struct {
	Title            string
	TitleLabel       string
	DescriptionLabel string
}

var modalTemplates = map[Kind]modalTemplate{
	KindFeature: {
		Title:            "Create feature request",
		TitleLabel:       "Feature Request Title",
		DescriptionLabel: "Feature Request Description",
	},
	KindBug: {
		Title:            "Create bug Report",
		TitleLabel:       "Bug Report Title",
		DescriptionLabel: "Bug Report Description",
	},
}

var genericTemplate = modalTemplate{
	Title:            "Create Issue",
	TitleLabel:       "Issue Title",
	DescriptionLabel: "Issue Description",
}

// BuildModal returns the issue form for kind with the description prefilled.
// The modal custom id carries kind and repo through the client round-trip.
func BuildModal(kind Kind, prefill, repo string) *discordgo.InteractionResponse {
	tmpl, ok := modalTemplates[kind]
	if !ok {
		tmpl = genericTemplate
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: ModalCustomID(kind, repo),
			Title:    tmpl.Title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID: FieldTitle,
						Label:    tmpl.TitleLabel,
						Style:    discordgo.TextInputShort,
						Required: true,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  FieldDescription,
						Label:     tmpl.DescriptionLabel,
						Style:     discordgo.TextInputParagraph,
						Value:     FitBody(prefill, maxTextInputLength),
						MaxLength: maxTextInputLength,
					},
				}},
			},
		},
	}
}

// ModalValues collects text input values of a submitted modal by custom id.
func ModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	out := make(map[string]string)
	collectInputs(data.Components, out)
	return out
}

func collectInputs(components []discordgo.MessageComponent, out map[string]string) {
	for _, c := range components {
		switch v := c.(type) {
		case *discordgo.ActionsRow:
			collectInputs(v.Components, out)
		case discordgo.ActionsRow:
			collectInputs(v.Components, out)
		case *discordgo.TextInput:
			out[v.CustomID] = v.Value
		case discordgo.TextInput:
			out[v.CustomID] = v.Value
		}
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
