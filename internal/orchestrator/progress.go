package orchestrator

// ProgressSink receives coarse phase labels while a turn is running.
// This is not token streaming: the gateway call is a single blocking
// request, and the sink only gives the caller something to display
// during otherwise-silent wait time. The full answer still only becomes
// available when the turn finishes.
type ProgressSink func(label string)

// Phase labels emitted to the sink, in rough turn order.
const (
	PhaseThinking  = "thinking"
	PhaseRecords   = "looking through records"
	PhaseGathering = "gathering information"
	PhaseAlmost    = "almost there"
	PhaseDone      = "done"
)

// emit calls the sink if one is set.
func emit(sink ProgressSink, label string) {
	if sink != nil {
		sink(label)
	}
}
