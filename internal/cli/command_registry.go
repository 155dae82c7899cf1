package cli

import (
	"context"
	"sort"
	"strings"

	"fact-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands.
// Grouped commands are registered as "group verb", e.g. "participant add".
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("serve", NewServeCommand(app))
	registry.Register("import", NewImportCommand(app))
	registry.Register("report", NewReportCommand(app))
	registry.Register("participant add", NewParticipantAddCommand(app))
	registry.Register("participant list", NewParticipantListCommand(app))
	registry.Register("fact get", NewFactGetCommand(app))
	registry.Register("fact delete", NewFactDeleteCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the command registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments.
// A group name consumes the first argument as its verb.
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	if command, ok := r.commands[commandName]; ok {
		return command.Execute(ctx, args)
	}
	if len(args) > 0 {
		if command, ok := r.commands[commandName+" "+args[0]]; ok {
			return command.Execute(ctx, args[1:])
		}
	}
	return errors.NewInvalidInputError("command", commandName, "unknown command")
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, "ft "+name)
	}
	sort.Strings(names)
	return "usage: " + strings.Join(names, " | ")
}
