package metrics

const (
	Namespace       = "votebook"
	EngineSubsystem = "engine"
	APISubsystem    = "api"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
