package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a file and prints a summary", func(t *testing.T) {
		app, out := setupTestApp(t)
		executorID := addParticipant(t, app, out, "Ann Example", "ann@example.com")

		path := filepath.Join(t.TempDir(), "facts.json")
		payload := fmt.Sprintf(`[
			{"executorId": %q, "description": "deploy", "startTime": "2024-01-10T09:00"},
			{"executorId": %q, "description": ""}
		]`, executorID, executorID)
		require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

		err := NewImportCommand(app).Execute(ctx, []string{path})

		require.NoError(t, err)
		assert.Equal(t, "Imported 1 execution fact(s), 1 failed\n  record 1: description is required\n", out.String())
	})

	t.Run("reads stdin and prints json", func(t *testing.T) {
		app, out := setupTestApp(t)
		executorID := addParticipant(t, app, out, "Ann Example", "ann@example.com")
		app.SetIO(strings.NewReader(fmt.Sprintf(`[{"executorId": %q, "description": "deploy"}]`, executorID)), out)

		cmd := NewImportCommand(app)
		cmd.JSON = true
		require.NoError(t, cmd.Execute(ctx, []string{"-"}))

		var result domain.BulkImportResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, 1, result.ImportedCount)
		assert.Empty(t, result.Failures)
	})

	t.Run("rejects a malformed batch without output", func(t *testing.T) {
		app, out := setupTestApp(t)
		app.SetIO(strings.NewReader(`{"executorId": "x"}`), out)

		err := NewImportCommand(app).Execute(ctx, []string{"-"})

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeParse))
		assert.Empty(t, out.String())
	})

	t.Run("reports a missing file", func(t *testing.T) {
		app, _ := setupTestApp(t)

		err := NewImportCommand(app).Execute(ctx, []string{filepath.Join(t.TempDir(), "missing.json")})

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})

	t.Run("requires exactly one source", func(t *testing.T) {
		app, _ := setupTestApp(t)

		err := NewImportCommand(app).Execute(ctx, nil)

		assert.Contains(t, err.Error(), "usage: ft import <file|->")
	})
}

func TestReportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	app, out := setupTestApp(t)
	ann := addParticipant(t, app, out, "Ann Example", "ann@example.com")
	bob := addParticipant(t, app, out, "Bob Example", "bob@example.com")

	app.SetIO(strings.NewReader(fmt.Sprintf(`[
		{"executorId": %q, "description": "deploy", "startTime": "2024-01-10T08:00", "finishTime": "2024-01-10T09:00"},
		{"executorId": %q, "description": "deploy, then verify", "startTime": "2024-01-10T09:00", "finishTime": "2024-01-10T12:00"},
		{"executorId": %q, "description": "review", "startTime": "2024-01-10T13:00"}
	]`, ann, ann, bob)), out)
	require.NoError(t, NewImportCommand(app).Execute(ctx, []string{"-"}))

	tests := []struct {
		name     string
		command  ReportCommand
		expected []string
	}{
		{
			name:     "every fact",
			command:  ReportCommand{},
			expected: []string{"deploy", "deploy, then verify", "review"},
		},
		{
			name:     "by email",
			command:  ReportCommand{Email: "bob@example.com"},
			expected: []string{"review"},
		},
		{
			name:     "by finish range",
			command:  ReportCommand{From: "2024-01-10T10:00", To: "2024-01-10T12:00"},
			expected: []string{"deploy, then verify"},
		},
		{
			name:     "one-sided range is ignored",
			command:  ReportCommand{From: "2024-01-10T23:00"},
			expected: []string{"deploy", "deploy, then verify", "review"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			cmd := tt.command
			cmd.app = app

			require.NoError(t, cmd.Execute(ctx, nil))

			records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
			require.NoError(t, err)
			require.Len(t, records, len(tt.expected)+1)
			assert.Equal(t, []string{"id", "start_time", "finish_time", "executor_full_name", "executor_id", "description"}, records[0])

			descriptions := make([]string, 0, len(records)-1)
			for _, record := range records[1:] {
				descriptions = append(descriptions, record[5])
			}
			assert.ElementsMatch(t, tt.expected, descriptions)
		})
	}

	t.Run("rejects a malformed date-time", func(t *testing.T) {
		out.Reset()
		cmd := ReportCommand{app: app, From: "yesterday", To: "2024-01-10T12:00"}

		err := cmd.Execute(ctx, nil)

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeParse))
		assert.Contains(t, errors.GetUserMessage(err), "--from")
		assert.Empty(t, out.String())
	})

	t.Run("rejects an oversize page", func(t *testing.T) {
		out.Reset()
		size := 101
		cmd := ReportCommand{app: app, PageSize: &size}

		err := cmd.Execute(ctx, nil)

		assert.Equal(t, "pageSize: must be less than or equal to 100", errors.GetUserMessage(err))
		assert.Empty(t, out.String())
	})
}

func TestFactCommands_Execute(t *testing.T) {
	ctx := context.Background()
	app, out := setupTestApp(t)
	executorID := addParticipant(t, app, out, "Ann Example", "ann@example.com")

	id, err := app.services.Facts.Create(ctx, domain.FactCandidate{ExecutorID: executorID, Description: "nightly backup"})
	require.NoError(t, err)

	t.Run("prints a running fact", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewFactGetCommand(app).Execute(ctx, []string{id}))

		assert.Equal(t, "ID:          "+id+"\n"+
			"Description: nightly backup\n"+
			"Executor:    Ann Example <ann@example.com>\n"+
			"Start:       2010-01-01T00:00:00\n"+
			"Finish:      running\n"+
			"Version:     0\n", out.String())
	})

	t.Run("deletes idempotently", func(t *testing.T) {
		for range 2 {
			out.Reset()
			require.NoError(t, NewFactDeleteCommand(app).Execute(ctx, []string{id}))
			assert.Equal(t, "Deleted execution fact "+id+"\n", out.String())
		}

		err := NewFactGetCommand(app).Execute(ctx, []string{id})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}

func TestParticipantCommands_Execute(t *testing.T) {
	ctx := context.Background()
	app, out := setupTestApp(t)

	id := addParticipant(t, app, out, "Zed Example", "zed@example.com")
	addParticipant(t, app, out, "Ann Example", "ann@example.com")

	require.NoError(t, NewParticipantListCommand(app).Execute(ctx, nil))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Ann Example")
	assert.True(t, strings.HasPrefix(lines[1], id))

	err := NewParticipantAddCommand(app).Execute(ctx, []string{"Zed", "Again", "zed@example.com"})
	assert.Equal(t, "EMAIL_TAKEN", errors.GetErrorCode(err))
}
