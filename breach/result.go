package breach

// Source says where a Result came from. Only LocalDenylist and RemoteAPI are
// definitive; the others mean the breach status is unknown.
type Source string

const (
	SourceLocalDenylist   Source = "local_denylist"
	SourceRemoteAPI       Source = "remote_api"
	SourceDisabled        Source = "disabled"
	SourceTimeout         Source = "timeout"
	SourceRateLimited     Source = "rate_limited"
	SourceConnectionError Source = "connection_error"
	SourceHTTPError       Source = "http_error"
)

type Result struct {
	Breached bool   `json:"breached"`
	Count    int    `json:"count"`
	Source   Source `json:"source"`
	Message  string `json:"message"`
}

// Known reports whether the result is a definitive answer. A false Breached
// on an unknown result must not be read as "clean".
func (r Result) Known() bool {
	return r.Source == SourceLocalDenylist || r.Source == SourceRemoteAPI
}

// Degraded reports whether the remote lookup was attempted and failed.
func (r Result) Degraded() bool {
	return !r.Known() && r.Source != SourceDisabled
}
