package cli

import (
	"context"
	"fmt"
	"strings"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
)

// ParticipantAddCommand registers a participant
type ParticipantAddCommand struct {
	app *App
}

// NewParticipantAddCommand creates a new participant add command handler
func NewParticipantAddCommand(app *App) *ParticipantAddCommand {
	return &ParticipantAddCommand{app: app}
}

// Execute registers the participant and prints its id.
// Every argument but the last forms the full name; the last is the email.
func (c *ParticipantAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "participant add", "usage: ft participant add <full name> <email>")
	}

	id, err := c.app.services.Participants.Register(ctx, domain.ParticipantCandidate{
		FullName: strings.Join(args[:len(args)-1], " "),
		Email:    args[len(args)-1],
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.app.out, id)
	return nil
}

// ParticipantListCommand prints every participant
type ParticipantListCommand struct {
	app *App
}

// NewParticipantListCommand creates a new participant list command handler
func NewParticipantListCommand(app *App) *ParticipantListCommand {
	return &ParticipantListCommand{app: app}
}

// Execute prints one line per participant: id, full name and email
func (c *ParticipantListCommand) Execute(ctx context.Context, args []string) error {
	participants, err := c.app.services.Participants.List(ctx)
	if err != nil {
		return err
	}

	if len(participants) == 0 {
		fmt.Fprintln(c.app.out, "No participants found")
		return nil
	}

	for _, p := range participants {
		fmt.Fprintf(c.app.out, "%s  %-30s %s\n", p.ID, p.FullName, p.Email)
	}
	return nil
}
