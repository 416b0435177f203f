package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const walkthroughURL = "https://youtube.com/playlist?list=PLK2MubdaaOrUaQnjvfsJnqJv3agRmd4oS&si=ZV0NCqxCioRmg9mq"

// Tool is a page of the companion web tool.
type Tool struct {
	Label string
	Path  string
}

// Tools lists the pages offered by the meadtools command.
var Tools = []Tool{
	{Label: "Calculator (home)", Path: "/"},
	{Label: "Nutrient Calculator", Path: "/nute-calc"},
	{Label: "ABV", Path: "/extra-calcs"},
	{Label: "Brix", Path: "/extra-calcs/brix"},
	{Label: "Estimated OG", Path: "/extra-calcs/estimated-og"},
	{Label: "Bench Trials", Path: "/extra-calcs/bench-trials"},
	{Label: "Sulfite", Path: "/extra-calcs/sulfite"},
	{Label: "Sorbate", Path: "/extra-calcs/sorbate"},
	{Label: "Refractometer Correction", Path: "/extra-calcs/refractometer-correction"},
	{Label: "Temperature Correction", Path: "/extra-calcs/temperature-correction"},
	{Label: "Blending", Path: "/extra-calcs/blending"},
	{Label: "Priming Sugar", Path: "/extra-calcs/priming-sugar"},
	{Label: "Stabilizers", Path: "/stabilizers"},
	{Label: "Juice Calc", Path: "/juice"},
	{Label: "Yeast Table", Path: "/yeasts"},
	{Label: "Tutorial", Path: "/tutorial"},
}

func meadtoolsCommand(baseURL string) Command {
	baseURL = strings.TrimRight(baseURL, "/")
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Tools))
	for _, t := range Tools {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  t.Label,
			Value: baseURL + t.Path,
		})
	}

	return Command{
		Name:        "meadtools",
		Description: "Get a direct link to a MeadTools page.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "tool",
				Description: "Pick a tool/page",
				Choices:     choices,
			},
		},
		Handler: func(_ context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
			if o, ok := optionMap(data.Options)["tool"]; ok {
				if url := o.StringValue(); url != "" {
					return r.Text(url)
				}
			}
			return r.Text(fmt.Sprintf("[Calculator](%s/)\n[Video walkthrough](%s)\n\nTip: use `/meadtools tool:` to jump straight to a page.",
				baseURL, walkthroughURL))
		},
	}
}
