package api

import (
	"encoding/json"
	"io"
	"net/http"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
)

type idResponse struct {
	ID string `json:"id"`
}

type participantSummaryResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type factResponse struct {
	ID          string                     `json:"id"`
	StartTime   domain.Timestamp           `json:"startTime"`
	FinishTime  *domain.Timestamp          `json:"finishTime"`
	Description string                     `json:"description"`
	Executor    participantSummaryResponse `json:"executor"`
	Version     int64                      `json:"version"`
}

type participantResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Version  int64  `json:"version"`
}

func newFactResponse(f domain.ExecutionFact) factResponse {
	resp := factResponse{
		ID:          f.ID,
		StartTime:   domain.Timestamp(f.StartTime),
		Description: f.Description,
		Executor: participantSummaryResponse{
			ID:       f.Executor.ID,
			FullName: f.Executor.FullName,
			Email:    f.Executor.Email,
		},
		Version: f.Version,
	}
	if f.FinishTime != nil {
		resp.FinishTime = domain.NewTimestamp(*f.FinishTime)
	}
	return resp
}

func newFactPage(page *domain.Page[domain.ExecutionFact]) domain.Page[factResponse] {
	items := make([]factResponse, 0, len(page.Items))
	for _, f := range page.Items {
		items = append(items, newFactResponse(f))
	}
	return domain.Page[factResponse]{
		Items:      items,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
	}
}

func newParticipantResponse(p domain.Participant) participantResponse {
	return participantResponse{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Version:  p.Version,
	}
}

// decodeBody reads a JSON request body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF && allowEmpty {
		return nil
	}
	if err != nil {
		return errors.NewParseError("request body is not valid JSON: "+err.Error(), err)
	}
	return nil
}
