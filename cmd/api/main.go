// @title           Earnings Summary API
// @version         1.0
// @description     Summarises the latest earnings release a company filed with the SEC. Jobs run asynchronously; poll the status URL for the report.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/EarningsAPI/internal/bootstrap"
	"github.com/akolanti/EarningsAPI/internal/config"
	jobmodel "github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/handlers"
	"github.com/akolanti/EarningsAPI/internal/job"
	"github.com/akolanti/EarningsAPI/internal/server"
	"github.com/akolanti/EarningsAPI/internal/worker"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

var (
	listenAddr        string
	debug             bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.Parse()

	envLoaded := config.LoadDotEnv()
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger_i.Init(os.Stdout, level)
	var logger = logger_i.NewLogger("main")
	logger.Debug("Environment", "dotenv", envLoaded)

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	jobStore, err := bootstrap.NewJobStore(serviceContext)
	if err != nil {
		logger.Error("Job store unavailable. Shutting down.", "error", err)
		return
	}

	driver, err := bootstrap.NewDriver(serviceContext)
	if err != nil {
		logger.Error("One or more external services failed to initialize. Shutting down.", "error", err)
		return
	}

	//init job service
	logger.Info("Starting job service")
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
		Summariser:        driver,
	})

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
