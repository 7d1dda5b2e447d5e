package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"1f0e7c4a-3b5d-4c1e-9d2f-6a7b8c9d0e1f"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type SummaryResponse struct {
	Ticker      string            `json:"ticker" example:"AAPL"`
	Form        string            `json:"form" example:"8-K"`
	Outcome     string            `json:"outcome" example:"success"`
	Company     string            `json:"company,omitempty" example:"Apple Inc."`
	FilingDate  string            `json:"filing_date,omitempty" example:"2024-08-01"`
	Accession   string            `json:"accession_number,omitempty" example:"0000320193-24-000081"`
	ExhibitURL  string            `json:"exhibit_url,omitempty"`
	ExhibitType string            `json:"exhibit_type,omitempty" example:"EX-99.1"`
	Metrics     map[string]string `json:"metrics,omitempty"`
	Report      string            `json:"report"`
}

type Result struct {
	Status      string           `json:"status" example:"COMPLETE"`
	CurrentStep string           `json:"current_step,omitempty" example:"MetricQueries"`
	Summary     *SummaryResponse `json:"summary,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type SummaryRequest struct {
	Ticker string `json:"ticker" validate:"required" example:"AAPL"`
	Form   string `json:"form,omitempty" example:"8-K"`
}
