package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	SummaryInit   InternalStatus = "Init"
	FilingLookup  InternalStatus = "FilingLookup"
	ExhibitFetch  InternalStatus = "ExhibitFetch"
	Normalising   InternalStatus = "Normalising"
	IndexBuild    InternalStatus = "IndexBuild"
	MetricQueries InternalStatus = "MetricQueries"
	ReportFormat  InternalStatus = "ReportFormat"
	RedisCall     InternalStatus = "Redis"
	Error         InternalStatus = "Error"
	Complete      InternalStatus = "Complete"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Ticker string `json:"ticker"`
	Form   string `json:"form"`

	Outcome     string            `json:"outcome,omitempty"`
	Report      string            `json:"report,omitempty"`
	Metrics     map[string]string `json:"metrics,omitempty"`
	Company     string            `json:"company,omitempty"`
	FilingDate  string            `json:"filing_date,omitempty"`
	Accession   string            `json:"accession_number,omitempty"`
	ExhibitURL  string            `json:"exhibit_url,omitempty"`
	ExhibitType string            `json:"exhibit_type,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
