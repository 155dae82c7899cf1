package cli

import (
	"context"
	"fmt"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
)

// ReportCommand writes matching execution facts to stdout as CSV
type ReportCommand struct {
	app *App

	Email       string
	Description string
	From        string
	To          string
	PageIndex   *int
	PageSize    *int
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "report", "report takes no arguments; use the filter flags")
	}

	criteria, err := c.criteria()
	if err != nil {
		return err
	}

	_, err = c.app.services.Search.Report(ctx, c.app.out, criteria)
	return err
}

func (c *ReportCommand) criteria() (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		PageIndex: c.PageIndex,
		PageSize:  c.PageSize,
	}
	if c.Email != "" {
		criteria.ExecutorEmail = &c.Email
	}
	if c.Description != "" {
		criteria.Description = &c.Description
	}

	var err error
	if criteria.FromFinishTime, err = parseFlagTimestamp("from", c.From); err != nil {
		return criteria, err
	}
	if criteria.ToFinishTime, err = parseFlagTimestamp("to", c.To); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func parseFlagTimestamp(flag, value string) (*domain.Timestamp, error) {
	if value == "" {
		return nil, nil
	}
	t, err := domain.ParseTimestamp(value)
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("--%s: %q is not a date-time like 2024-01-10T09:00", flag, value), err)
	}
	return domain.NewTimestamp(t), nil
}
