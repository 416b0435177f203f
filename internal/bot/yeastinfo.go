package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/yeast"
)

const (
	msgChooseYeast   = "Please choose a valid yeast from the list."
	msgYeastNotFound = "Yeast not found for that brand."
)

func yeastInfoCommand(logger *slog.Logger, catalog YeastCatalog) Command {
	brandChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(yeast.Brands))
	for _, b := range yeast.Brands {
		brandChoices = append(brandChoices, &discordgo.ApplicationCommandOptionChoice{Name: b, Value: b})
	}

	return Command{
		Name:        "yeastinfo",
		Description: "Get info on a specific yeast from the MeadTools API.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "brand",
				Description: "Yeast brand",
				Required:    true,
				Choices:     brandChoices,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "yeast",
				Description:  "Start typing a yeast name…",
				Required:     true,
				Autocomplete: true,
			},
		},
		Handler: func(ctx context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
			opts := optionMap(data.Options)
			brand, value := stringOption(opts, "brand"), stringOption(opts, "yeast")
			if value == yeast.NoMatchValue || value == "" {
				return r.Ephemeral(msgChooseYeast)
			}

			all, err := loadYeasts(ctx, catalog)
			if err != nil {
				r.BestEffort(r.Ephemeral("Error loading yeasts: " + err.Error()))
				return err
			}
			picked, ok := yeast.Find(all, brand, value)
			if !ok {
				return r.Ephemeral(msgYeastNotFound)
			}
			return r.Send(&discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{yeastEmbed(picked)},
			})
		},
		Autocomplete: func(ctx context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
			opts := optionMap(data.Options)
			brand := stringOption(opts, "brand")
			var query string
			for _, o := range data.Options {
				if o.Focused {
					query = fmt.Sprint(o.Value)
				}
			}

			all, err := loadYeasts(ctx, catalog)
			if err != nil {
				logger.Warn("yeast autocomplete failed", "error", err)
				r.BestEffort(respondChoices(r, []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Error fetching yeasts", Value: yeast.NoMatchValue},
				}))
				return nil
			}
			return respondChoices(r, yeastChoices(yeast.Search(all, brand, query, yeast.MaxChoices)))
		},
	}
}

var errNoCatalog = errors.New("yeast catalog not configured")

func loadYeasts(ctx context.Context, catalog YeastCatalog) ([]yeast.Yeast, error) {
	if catalog == nil {
		return nil, errNoCatalog
	}
	return catalog.All(ctx)
}

func yeastChoices(matches []yeast.Yeast) []*discordgo.ApplicationCommandOptionChoice {
	if len(matches) == 0 {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "No matches", Value: yeast.NoMatchValue}}
	}
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(matches))
	for _, y := range matches {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{
			Name:  clip(y.Name, 100),
			Value: strconv.Itoa(y.ID),
		})
	}
	return out
}

func respondChoices(r *Reply, choices []*discordgo.ApplicationCommandOptionChoice) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

func yeastEmbed(y yeast.Yeast) *discordgo.MessageEmbed {
	nitrogen := y.NitrogenRequirement
	if nitrogen == "" {
		nitrogen = "—"
	}
	return &discordgo.MessageEmbed{
		Title: clip(y.Brand, 100) + " — " + clip(y.Name, 100),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Nitrogen Requirement", Value: clip(nitrogen, 1024), Inline: true},
			{Name: "Alcohol Tolerance", Value: clip(string(y.Tolerance)+"%", 1024), Inline: true},
			{Name: "Temperature Range", Value: clip(string(y.LowTemp)+"–"+string(y.HighTemp)+" °F", 1024), Inline: true},
		},
	}
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	o, ok := opts[name]
	if !ok || o.Value == nil {
		return ""
	}
	s, _ := o.Value.(string)
	return s
}

func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
