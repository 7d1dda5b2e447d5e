package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/akolanti/EarningsAPI/internal/adapter"
	"github.com/akolanti/EarningsAPI/internal/api"
	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
)

const maxRequestBytes = 1 << 14

var (
	tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)
	formPattern   = regexp.MustCompile(`^[A-Z0-9/\-]{1,10}$`)
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// status is already written
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateSummaryRequest(req api.SummaryRequest) (commonModels.FilingReference, bool) {
	ref := commonModels.FilingReference{Ticker: req.Ticker, Form: req.Form}.Normalised(config.DefaultForm)
	if !tickerPattern.MatchString(ref.Ticker) || !formPattern.MatchString(ref.Form) {
		return ref, false
	}
	return ref, true
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.WithTrace(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}
