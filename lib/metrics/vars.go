package metrics

var (
	Engine = NopEngineMetrics()
	API    = NopAPIMetrics()
)
