package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/akolanti/EarningsAPI/internal/adapter"
	"github.com/akolanti/EarningsAPI/internal/adapter/utils"
	"github.com/akolanti/EarningsAPI/internal/api"
	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

type newJobData struct {
	id      string
	ticker  string
	form    string
	traceId string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// SummaryHandler godoc
// @Summary      Start an earnings summary job
// @Description  Queues a summary of the latest earnings exhibit for a ticker and returns a job ID to poll.
// @Tags         Summary
// @Accept       json
// @Produce      json
// @Param        request  body      api.SummaryRequest   true  "Ticker and optional form type (default 8-K)"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data"
// @Failure      503      {object}  api.JobResponse      "Job could not be stored"
// @Router       /summary [post]
func SummaryHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request", "remote", request.RemoteAddr)
		return
	}

	var requestData api.SummaryRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the summary request body", "error", err)
		}
	}(request.Body)

	if err := json.NewDecoder(io.LimitReader(request.Body, maxRequestBytes)).Decode(&requestData); err != nil {
		logRH.WithTrace(request.Context()).Warn("Bad summary request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}
	ref, ok := validateSummaryRequest(requestData)
	if !ok {
		logRH.WithTrace(request.Context()).Warn("Bad summary request", "request", requestData)
		WriteErrorResponse(w, http.StatusBadRequest, "", "ticker must be 1-10 letters, digits, '.' or '-'")
		return
	}

	newJob := newJobData{
		id:      utils.NewJobID(),
		ticker:  ref.Ticker,
		form:    ref.Form,
		traceId: traceFrom(request.Context()),
	}
	if err := CreateNewJob(request.Context(), newJob); err != nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, newJob.id, "Job store unavailable")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status, step and, once finished, the report of a summary job.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.JobIDParam(r)
	result, isFound := validateId(idString, traceFrom(r.Context()))

	logRH.WithTrace(r.Context()).Debug("Get Status Request", "path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func traceFrom(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}
