package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/job"
	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           = logger_i.NewLogger("JobHandler")
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(ctx context.Context, newJob newJobData) error {
	logJH.WithTrace(ctx).Info("Creating summary job", "jobId", newJob.id, "ticker", newJob.ticker)
	return handlerInstance.pushToJobChannel(ctx, newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(ctx context.Context, newJob newJobData) error {

	_job := jobModel.Job{
		Id:          newJob.id,
		CreatedTime: time.Now(),
		TraceId:     newJob.traceId,
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.SummaryInit,
		JobPayload: jobModel.JobPayload{
			Ticker: newJob.ticker,
			Form:   newJob.form,
		},
	}

	// saved before queueing so the status endpoint sees it at once
	if err := h.service.JobStore.SaveJob(ctx, _job); err != nil {
		logJH.WithTrace(ctx).Error("could not save queued job", "jobId", _job.Id, "error", err)
		return err
	}

	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send so a full buffer pushes back on callers
	logJH.Debug("Queued job", "jobId", _job.Id)

	//one more worker every RequestsPerNewWorkerCount requests; idle workers retire
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount()
		select {
		case h.service.DispatcherChannel <- true:
		default:
		}
	}
	return nil
}
