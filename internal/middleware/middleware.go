package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/EarningsAPI/internal/handlers"
	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var logger = logger_i.NewLogger("middleware")

var GetHandler = Wrap(handlers.GetHandler)

var SummaryHandler = Wrap(handlers.SummaryHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if !re.badRequest.isBadRequest {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(routeLabel(r), strconv.Itoa(rec.Status)).Inc()
	}
}

// processRequest runs trace, auth and rate limit in order and answers the
// first failure itself.
func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger
	re = injectTrace(re)
	if handleBadRequest(re) {
		return re
	}
	re.logger.Debug("New request received", "path", re.req.URL.Path)

	re = authenticate(re)
	if handleBadRequest(re) {
		return re
	}
	re = rateLimiter(re)
	handleBadRequest(re)
	return re
}
