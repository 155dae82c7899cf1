package services

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/logging"
	"fact-tracker/internal/monitor"
)

// BulkImportPipeline records a JSON array of fact candidates one by one.
// Every candidate is judged on its own; committed records are never rolled back.
type BulkImportPipeline struct {
	creator FactCreator
	clock   Clock
	metrics *monitor.Metrics
	tracer  *monitor.Tracer
}

// NewBulkImportPipeline creates a pipeline committing through creator
func NewBulkImportPipeline(creator FactCreator, opts ...Option) *BulkImportPipeline {
	o := buildOptions(opts)
	return &BulkImportPipeline{
		creator: creator,
		clock:   o.clock,
		metrics: o.metrics,
		tracer:  o.tracer,
	}
}

// batchEntry is one decoded element of an import payload
type batchEntry struct {
	raw       json.RawMessage
	candidate domain.FactCandidate
}

// Import parses the whole payload before committing anything. A payload that is
// not a JSON array of candidates is a parse error. Cancelling ctx stops the import
// before the next record; the partial result is returned with a timeout error.
func (p *BulkImportPipeline) Import(ctx context.Context, r io.Reader) (result *domain.BulkImportResult, err error) {
	ctx, span := p.tracer.StartSpan(ctx, "import")
	defer func() {
		if result != nil {
			span.SetAttributes(
				monitor.AttrImported.Int(result.ImportedCount),
				monitor.AttrFailed.Int(result.FailedCount),
			)
		}
		monitor.EndSpan(span, err)
	}()

	batch, err := decodeBatch(r)
	if err != nil {
		return nil, err
	}
	p.metrics.RecordImportBatch()

	logger := logging.FromContext(ctx)
	result = domain.NewBulkImportResult()

	for index, entry := range batch {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn().Int("processed", result.Processed()).Int("total", len(batch)).Msg("bulk import interrupted")
			return result, errors.NewTimeoutError("bulk import", ctxErr)
		}

		id, createErr := p.creator.Create(ctx, entry.candidate)
		if createErr != nil {
			if errors.ShouldLogError(createErr) {
				logger.Error().Err(createErr).Int("index", index).Msg("bulk import record failed")
			}
			result.RecordFailure(index, entry.raw, p.errorDetail(createErr))
			p.metrics.RecordImportRecord(monitor.ImportResultFailed)
			continue
		}

		result.RecordImported(id)
		p.metrics.RecordImportRecord(monitor.ImportResultImported)
	}

	logger.Info().
		Int("imported", result.ImportedCount).
		Int("failed", result.FailedCount).
		Msg("bulk import finished")
	return result, nil
}

// errorDetail describes a rejected record
func (p *BulkImportPipeline) errorDetail(err error) domain.ErrorDetail {
	detail := domain.ErrorDetail{
		Type:    "unknown",
		Code:    errors.GetErrorCode(err),
		Message: errors.GetUserMessage(err),
		Date:    domain.Timestamp(p.clock()),
	}
	if appErr, ok := errors.AsAppError(err); ok {
		detail.Type = appErr.Type.String()
		detail.Details = appErr.Itemized()
	}
	return detail
}

// decodeBatch reads a JSON array and decodes every element into a candidate
func decodeBatch(r io.Reader) ([]batchEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewParseError("failed to read import payload", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParseError("import payload is empty", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.NewParseError("import payload is not valid JSON", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.NewParseError("import payload must be a JSON array of execution facts", nil)
	}

	var raws []json.RawMessage
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.NewParseError("import payload is not valid JSON", err)
		}
		raws = append(raws, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.NewParseError("import payload is not valid JSON", err)
	}
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParseError("unexpected data after the import array", err)
	}

	batch := make([]batchEntry, len(raws))
	for i, raw := range raws {
		batch[i].raw = raw
		if err := json.Unmarshal(raw, &batch[i].candidate); err != nil {
			return nil, errors.NewParseError(fmt.Sprintf("record %d is not an execution fact: %v", i, err), err)
		}
	}
	return batch, nil
}
