package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/logging"
)

// ImportCommand loads a JSON array of execution facts from a file or stdin
type ImportCommand struct {
	app  *App
	JSON bool
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app}
}

// Execute runs the import command. "-" reads the batch from stdin.
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: ft import <file|->")
	}

	var r io.Reader = c.app.in
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.NewInvalidInputError("file", args[0], err.Error())
		}
		defer f.Close()
		r = f
	}

	logging.Debugf("importing execution facts from %s", args[0])
	result, err := c.app.services.Import.Import(ctx, r)
	if result == nil {
		return err
	}

	if printErr := c.print(result); printErr != nil {
		return printErr
	}
	return err
}

func (c *ImportCommand) print(result *domain.BulkImportResult) error {
	if c.JSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(c.app.out, "Imported %d execution fact(s), %d failed\n", result.ImportedCount, result.FailedCount)
	for _, failure := range result.Failures {
		fmt.Fprintf(c.app.out, "  record %d: %s\n", failure.Index, failure.Error.Message)
	}
	return nil
}
