package runner

import (
	"io"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/votebook/lib/network"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/node/runner/api"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

const UrlPathPrefixMetric = "/metrics"

type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	cache     *httpcache.Client
	accessLog io.Writer
}

// WithCache answers the poll and results requests from `c`.
func WithCache(c *httpcache.Client) HandlerOption {
	return func(o *handlerOptions) {
		o.cache = c
	}
}

// WithAccessLog writes every request in the combined log format to `w`.
func WithAccessLog(w io.Writer) HandlerOption {
	return func(o *handlerOptions) {
		o.accessLog = w
	}
}

// Handler builds the http handler of the node: the api, the prometheus
// metrics and the middlewares around them.
func (r *Runner) Handler(options ...HandlerOption) (http.Handler, error) {
	var o handlerOptions
	for _, option := range options {
		option(&o)
	}

	router := mux.NewRouter()
	router.Use(network.RecoverMiddleware(r.log))

	rateLimit, err := network.RateLimitMiddleware(r.log, r.config.RateLimitAPI)
	if err != nil {
		return nil, err
	}

	router.Use(rateLimit)
	router.Use(network.MetricsMiddleware)

	apiHandler := api.NewNetworkHandlerAPI(
		r.storage,
		r.engine,
		r.Submit,
		r.NodeInfo,
		resource.APIPrefix,
	)
	if o.cache != nil {
		apiHandler.SetCache(o.cache)
	}
	apiHandler.Route(router)

	router.Handle(UrlPathPrefixMetric, promhttp.Handler()).Methods("GET")

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{"GET", "POST"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"}),
	)

	var handler http.Handler = network.NewLog15Handler(r.log, cors(router))
	if o.accessLog != nil {
		handler = ghandlers.CombinedLoggingHandler(o.accessLog, handler)
	}

	return handler, nil
}
