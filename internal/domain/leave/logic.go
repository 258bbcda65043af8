package leave

import "fmt"

// StatusForDecision maps an accept/reject decision onto the resulting status.
// Deciding does not require the current status to be pending: an already-decided
// leave can be re-decided, and the last decision wins. Known gap, kept as-is.
func StatusForDecision(decision string) (string, error) {
	switch decision {
	case DecisionAccept:
		return StatusAccepted, nil
	case DecisionReject:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown decision %q", decision)
	}
}
