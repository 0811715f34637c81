package room

// readyDecision is the outcome of evaluating the ready set
type readyDecision int

const (
	// readyWait means not enough players are ready
	readyWait readyDecision = iota
	// readyStartNow means the round should begin immediately
	readyStartNow
	// readyCountdown means enough players are ready to start a grace countdown
	readyCountdown
)

// evaluateReady decides what to do after the ready set changes. A round
// needs at least two online players and at least two of them ready. If
// everyone online is ready there is nobody left to wait for, so the
// round starts immediately; otherwise a countdown gives the rest a
// chance to opt in.
func evaluateReady(online, ready int) readyDecision {
	if online < 2 || ready < 2 {
		return readyWait
	}

	if ready >= online {
		return readyStartNow
	}

	return readyCountdown
}
