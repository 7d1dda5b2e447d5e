package job

import (
	"context"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
)

// Summariser runs one summary. pipeline.Driver is the production one.
type Summariser interface {
	Track(ctx context.Context, ref commonModels.FilingReference, progress pipeline.Progress) pipeline.Summary
}

type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	Summariser        Summariser
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	Summariser        Summariser
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		Summariser:        cfg.Summariser,
	}
}
