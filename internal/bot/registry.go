package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/meadtools/meadbot/internal/issues"
)

// HandlerFunc handles a chat command or its autocomplete request.
type HandlerFunc func(ctx context.Context, r *Reply, data discordgo.ApplicationCommandInteractionData) error

// Command is a chat command entry of the Registry.
type Command struct {
	Name         string
	Description  string
	Options      []*discordgo.ApplicationCommandOption
	Handler      HandlerFunc
	Autocomplete HandlerFunc
}

// Registry is the declarative table of chat commands.
type Registry struct {
	order    []string
	commands map[string]*Command
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Add registers cmd. Names must be unique.
func (r *Registry) Add(cmd Command) error {
	if cmd.Name == "" || cmd.Handler == nil {
		return fmt.Errorf("command %q needs a name and a handler", cmd.Name)
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("command %q already registered", cmd.Name)
	}
	r.order = append(r.order, cmd.Name)
	r.commands[cmd.Name] = &cmd
	return nil
}

// MustAdd registers cmd and panics on a duplicate or incomplete entry.
func (r *Registry) MustAdd(cmd Command) {
	if err := r.Add(cmd); err != nil {
		panic(err)
	}
}

// Lookup returns the command named name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered chat command names in insertion order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// ApplicationCommands compiles the registration payload: every chat command
// followed by the issue context menu commands.
func (r *Registry) ApplicationCommands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(r.order)+2)
	for _, name := range r.order {
		cmd := r.commands[name]
		out = append(out, &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
			Type:        discordgo.ChatApplicationCommand,
			Options:     cmd.Options,
		})
	}
	for _, name := range []string{issues.CommandBugReport, issues.CommandFeatureRequest} {
		out = append(out, &discordgo.ApplicationCommand{
			Name: name,
			Type: discordgo.MessageApplicationCommand,
		})
	}
	return out
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}
