package pipeline

// State is where the orchestrator is in an analysis
type State int32

const (
	StateIdle State = iota
	StateRetrieving
	StateReuseCandidate
	StateExtracting
	StateValidating
	StateResolving
	StateFiltering
	StateDeduplicating
	StateReady
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateRetrieving:     "retrieving",
	StateReuseCandidate: "reuse_candidate",
	StateExtracting:     "extracting",
	StateValidating:     "validating",
	StateResolving:      "resolving",
	StateFiltering:      "filtering",
	StateDeduplicating:  "deduplicating",
	StateReady:          "ready",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
