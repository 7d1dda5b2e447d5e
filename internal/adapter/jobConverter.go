package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/EarningsAPI/internal/api"
	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToFilingReference(payload jobModel.JobPayload) commonModels.FilingReference {
	return commonModels.FilingReference{Ticker: payload.Ticker, Form: payload.Form}.Normalised(config.DefaultForm)
}

// ApplySummary copies a finished run into the job payload.
func ApplySummary(job jobModel.Job, summary pipeline.Summary) jobModel.Job {
	p := job.JobPayload
	if summary.Reference.Ticker != "" {
		p.Ticker = summary.Reference.Ticker
		p.Form = summary.Reference.Form
	}
	p.Outcome = string(summary.Outcome)
	p.Report = summary.Report
	p.Company = summary.Filing.Company
	p.FilingDate = summary.Filing.FilingDate
	p.Accession = summary.Filing.AccessionNumber
	p.ExhibitURL = summary.Exhibit.URL
	p.ExhibitType = summary.Exhibit.DocumentType
	if len(summary.Metrics) > 0 {
		p.Metrics = summary.Metrics.AsMap()
	}
	job.JobPayload = p
	return job
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:      string(job.Status),
		CurrentStep: string(job.CurrentStep),
		Summary:     ToSummaryResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

// ToSummaryResponse is nil until the run has produced a report.
func ToSummaryResponse(p jobModel.JobPayload) *api.SummaryResponse {
	if p.Report == "" {
		return nil
	}

	return &api.SummaryResponse{
		Ticker:      p.Ticker,
		Form:        p.Form,
		Outcome:     p.Outcome,
		Company:     p.Company,
		FilingDate:  p.FilingDate,
		Accession:   p.Accession,
		ExhibitURL:  p.ExhibitURL,
		ExhibitType: p.ExhibitType,
		Metrics:     p.Metrics,
		Report:      p.Report,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
