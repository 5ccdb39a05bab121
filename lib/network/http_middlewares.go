package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/network/httputils"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.MustWriteJSON(w, http.StatusInternalServerError, err)
					logger.Error("recover an panic", "error", err, "stack", string(debug.Stack()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits the requests of each client ip; `rule` is
// formatted like "100-S" or "1000-H".
func RateLimitMiddleware(logger logging.Logger, rule string) (mux.MiddlewareFunc, error) {
	rate, err := limiter.NewRateFromFormatted(rule)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log
	}
	logger.Debug("rate limit enabled", "rule", rule)

	m := stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate))
	return m.Handler, nil
}

// MetricsMiddleware counts the requests of each route. It must be used on
// the router, after the route is matched.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		writer := &ResponseLog15Writer{w: w, status: http.StatusOK}
		next.ServeHTTP(writer, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		metrics.API.AddRequest(endpoint, r.Method, writer.Status(), time.Since(started))
	})
}
