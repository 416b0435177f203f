package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/formula"
)

const (
	msgInvalidGravity = "Please enter valid gravity values. Example: `/abv og: 1.050 fg: 1.010`"
	msgInvalidDelle   = "Please provide ABV between 0–23 and FG between 0.980–1.200."
)

// ErrInvalidGravity reports gravity or ABV inputs outside the accepted ranges.
var ErrInvalidGravity = errors.New("invalid gravity input")

func abvCommand() Command {
	return Command{
		Name:        "abv",
		Description: "Calculates the abv based on an original and final gravity reading.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "og",
				Description: "The original gravity of your brew.",
				Required:    true,
				MinValue:    floatPtr(formula.MinGravity),
				MaxValue:    formula.MaxGravity,
			},
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "fg",
				Description: "The final gravity of your brew.",
				MinValue:    floatPtr(formula.MinGravity),
				MaxValue:    formula.MaxGravity,
			},
		},
		Handler: handleABV,
	}
}

func handleABV(_ context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
	og, fg, err := gravityInputs(data.Options)
	if err != nil {
		return r.Text(msgInvalidGravity)
	}

	res := formula.ComputeABV(og, fg)
	return r.Text(fmt.Sprintf("An OG of %.3f and an FG of %.3f yields **%s%% ABV** and **%d delle units**.",
		og, fg, strconv.FormatFloat(res.ABV, 'f', -1, 64), res.Delle))
}

// gravityInputs reads og and fg, defaulting a missing fg.
func gravityInputs(options []*discordgo.ApplicationCommandInteractionDataOption) (og, fg float64, err error) {
	opts := optionMap(options)
	og, fg = math.NaN(), formula.DefaultFG
	if o, ok := opts["og"]; ok {
		og = o.FloatValue()
	}
	if o, ok := opts["fg"]; ok {
		fg = o.FloatValue()
	}
	if !formula.ValidGravities(og, fg) {
		return og, fg, fmt.Errorf("%w: og %v fg %v", ErrInvalidGravity, og, fg)
	}
	return og, fg, nil
}

func delleCommand() Command {
	return Command{
		Name:        "delle",
		Description: "Calculates delle units from ABV (%) and final gravity (SG).",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "abv",
				Description: "Alcohol by volume percentage (e.g., 12.5).",
				Required:    true,
				MinValue:    floatPtr(formula.MinABV),
				MaxValue:    formula.MaxABV,
			},
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "fg",
				Description: "Final gravity in specific gravity (e.g., 0.996).",
				Required:    true,
				MinValue:    floatPtr(formula.MinGravity),
				MaxValue:    formula.MaxGravity,
			},
		},
		Handler: handleDelle,
	}
}

func handleDelle(_ context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error {
	opts := optionMap(data.Options)
	abv, fg := math.NaN(), math.NaN()
	if o, ok := opts["abv"]; ok {
		abv = o.FloatValue()
	}
	if o, ok := opts["fg"]; ok {
		fg = o.FloatValue()
	}

	if !formula.ValidDelleInputs(abv, fg) {
		return r.Text(msgInvalidDelle)
	}

	delle := formula.DelleFromABV(abv, fg)
	verdict := "Your brew will likely need stabilizers to prevent refermentation."
	if formula.IsStable(delle) {
		verdict = "Your brew is likely stable without chemical stabilizers."
	}
	return r.Text(fmt.Sprintf("**%.2f%%** ABV and FG **%.3f** → **%d delle units**.\n%s", abv, fg, delle, verdict))
}
