package commands

// CompletionOutcome classifies one member of a batch completion.
type CompletionOutcome int

const (
	// OutcomeCompleted means the transition was applied (or was already
	// applied; re-completing is an idempotent no-op).
	OutcomeCompleted CompletionOutcome = iota

	// OutcomeBusinessFailure means the store rejected the transition.
	// Retrying without re-reading state will fail again.
	OutcomeBusinessFailure

	// OutcomeTransportFailure means the request never took effect at
	// the store. Safe to retry.
	OutcomeTransportFailure
)

// CompletionResult is the outcome for a single order in a batch.
type CompletionResult struct {
	OrderCode string
	Outcome   CompletionOutcome
	Err       error
}

// BatchResult reports a per-member outcome for a batch completion.
// Batch operations never fail atomically: one member's failure does not
// block or roll back the others, and the caller retries only the failed
// subset.
type BatchResult struct {
	Results []CompletionResult
}

// Succeeded returns the number of completed members.
func (r BatchResult) Succeeded() int {
	return r.count(OutcomeCompleted)
}

// BusinessFailures returns the number of members the store rejected.
func (r BatchResult) BusinessFailures() int {
	return r.count(OutcomeBusinessFailure)
}

// TransportFailures returns the number of members that never reached
// the store.
func (r BatchResult) TransportFailures() int {
	return r.count(OutcomeTransportFailure)
}

func (r BatchResult) count(outcome CompletionOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}
