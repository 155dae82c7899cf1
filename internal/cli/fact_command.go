package cli

import (
	"context"
	"fmt"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
)

const runningStatus = "running"

// FactGetCommand prints a single execution fact
type FactGetCommand struct {
	app *App
}

// NewFactGetCommand creates a new fact get command handler
func NewFactGetCommand(app *App) *FactGetCommand {
	return &FactGetCommand{app: app}
}

// Execute runs the fact get command
func (c *FactGetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "fact get", "usage: ft fact get <id>")
	}

	fact, err := c.app.services.Facts.Get(ctx, args[0])
	if err != nil {
		return err
	}

	finish := runningStatus
	if fact.FinishTime != nil {
		finish = domain.FormatTimestamp(*fact.FinishTime)
	}

	fmt.Fprintf(c.app.out, "ID:          %s\n", fact.ID)
	fmt.Fprintf(c.app.out, "Description: %s\n", fact.Description)
	fmt.Fprintf(c.app.out, "Executor:    %s <%s>\n", fact.Executor.FullName, fact.Executor.Email)
	fmt.Fprintf(c.app.out, "Start:       %s\n", domain.FormatTimestamp(fact.StartTime))
	fmt.Fprintf(c.app.out, "Finish:      %s\n", finish)
	fmt.Fprintf(c.app.out, "Version:     %d\n", fact.Version)
	return nil
}

// FactDeleteCommand removes an execution fact
type FactDeleteCommand struct {
	app *App
}

// NewFactDeleteCommand creates a new fact delete command handler
func NewFactDeleteCommand(app *App) *FactDeleteCommand {
	return &FactDeleteCommand{app: app}
}

// Execute deletes the fact. Unknown ids are reported as deleted.
func (c *FactDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "fact delete", "usage: ft fact delete <id>")
	}

	if err := c.app.services.Facts.Delete(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Deleted execution fact %s\n", args[0])
	return nil
}
