package domain

import "encoding/json"

// ErrorDetail describes why a single bulk import record was rejected.
type ErrorDetail struct {
	Type    string    `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
	Date    Timestamp `json:"date"`
}

// ImportFailure pairs the original candidate record with its error.
type ImportFailure struct {
	Index     int             `json:"index"`
	Candidate json.RawMessage `json:"candidate"`
	Error     ErrorDetail     `json:"error"`
}

// BulkImportResult accumulates the outcome of a bulk import.
// ImportedCount + FailedCount equals the number of processed candidates.
type BulkImportResult struct {
	ImportedCount int             `json:"importedCount"`
	FailedCount   int             `json:"failedCount"`
	ImportedIDs   []string        `json:"importedIds"`
	Failures      []ImportFailure `json:"failures"`
}

// NewBulkImportResult creates an empty result.
func NewBulkImportResult() *BulkImportResult {
	return &BulkImportResult{
		ImportedIDs: make([]string, 0),
		Failures:    make([]ImportFailure, 0),
	}
}

// RecordImported registers a committed candidate.
func (r *BulkImportResult) RecordImported(id string) {
	r.ImportedCount++
	r.ImportedIDs = append(r.ImportedIDs, id)
}

// RecordFailure registers a rejected candidate.
func (r *BulkImportResult) RecordFailure(index int, candidate json.RawMessage, detail ErrorDetail) {
	r.FailedCount++
	r.Failures = append(r.Failures, ImportFailure{
		Index:     index,
		Candidate: candidate,
		Error:     detail,
	})
}

// Processed returns the number of candidates handled so far.
func (r *BulkImportResult) Processed() int {
	return r.ImportedCount + r.FailedCount
}
