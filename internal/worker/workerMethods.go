package worker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/EarningsAPI/internal/adapter"
	"github.com/akolanti/EarningsAPI/internal/config"
	jobmodel "github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()
	log := logger.WithTrace(ctx).With("jobId", job.Id)
	log.Debug("Processing job", "ticker", job.JobPayload.Ticker, "form", job.JobPayload.Form)

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job)

	summary := runSummary(ctx, job)

	job = adapter.ApplySummary(job, summary)
	job.EndTime = time.Now()
	if summary.Outcome == pipeline.OutcomeError {
		job.Status = jobmodel.JobStatusError
		job.CurrentStep = jobmodel.Error
		job.Error = jobmodel.JobError{
			Code:    http.StatusBadGateway,
			Message: summary.Report,
			Retry:   true,
		}
	} else {
		job.Status = jobmodel.JobStatusComplete
		job.CurrentStep = jobmodel.Complete
	}
	saveJobState(ctx, job)
	log.Info("Job finished", "outcome", summary.Outcome, "elapsed", time.Since(start))
}

// runSummary keeps a panic in the summariser from taking the worker down.
func runSummary(ctx context.Context, job jobmodel.Job) (summary pipeline.Summary) {
	defer func() {
		if r := recover(); r != nil {
			summary = pipeline.Summary{
				Outcome: pipeline.OutcomeError,
				Err:     fmt.Errorf("panic: %v", r),
				Report:  fmt.Sprintf("Error processing %s: panic: %v", job.JobPayload.Ticker, r),
			}
		}
	}()

	progress := func(step jobmodel.InternalStatus) {
		job.CurrentStep = step
		saveJobState(ctx, job)
	}
	return _jobService.Summariser.Track(ctx, adapter.ToFilingReference(job.JobPayload), progress)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCountValue())
}

func saveJobState(ctx context.Context, job jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.WithTrace(ctx).Error("Failed to update job state", "jobId", job.Id, "err", err)
	}
}
