package services

import (
	"context"
	"encoding/csv"
	"io"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/query"
	"fact-tracker/internal/repository"
)

// ReportHeader is the first row of every execution fact report
var ReportHeader = []string{"id", "start_time", "finish_time", "executor_full_name", "executor_id", "description"}

// flusher is satisfied by http.ResponseWriter implementations that support streaming
type flusher interface {
	Flush()
}

// CSVReportEncoder streams execution facts as CSV, one page at a time
type CSVReportEncoder struct {
	pager   FactPager
	metrics *monitor.Metrics
}

// NewCSVReportEncoder creates an encoder reading through pager
func NewCSVReportEncoder(pager FactPager, metrics *monitor.Metrics) *CSVReportEncoder {
	return &CSVReportEncoder{pager: pager, metrics: metrics}
}

// Encode writes the header and every fact matching pred from startPage onwards.
// pageSize bounds how many facts are held in memory at once.
func (e *CSVReportEncoder) Encode(ctx context.Context, w io.Writer, pred query.Predicate, startPage, pageSize int) (int, error) {
	cw := csv.NewWriter(w)
	rows := 0
	defer func() { e.metrics.RecordReportRows(rows) }()

	if err := cw.Write(ReportHeader); err != nil {
		return rows, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to write report header")
	}

	for index := startPage; ; index++ {
		if err := ctx.Err(); err != nil {
			return rows, errors.NewTimeoutError("generate report", err)
		}

		page, err := e.pager.Page(ctx, pred, index, pageSize)
		if err != nil {
			return rows, err
		}

		for _, fact := range page.Items {
			if err := cw.Write(reportRow(fact)); err != nil {
				return rows, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to write report row")
			}
			rows++
		}

		cw.Flush()
		if err := cw.Error(); err != nil {
			return rows, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to flush report")
		}
		if f, ok := w.(flusher); ok {
			f.Flush()
		}

		if page.IsLast() || len(page.Items) == 0 {
			return rows, nil
		}
	}
}

func reportRow(fact *repository.FactDetail) []string {
	finish := ""
	if fact.FinishTime != nil {
		finish = domain.FormatTimestamp(*fact.FinishTime)
	}
	return []string{
		fact.ID,
		domain.FormatTimestamp(fact.StartTime),
		finish,
		fact.ExecutorFullName,
		fact.ExecutorID,
		fact.Description,
	}
}
