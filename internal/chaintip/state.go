package chaintip

// State is the watcher's connection lifecycle phase.
type State uint8

const (
	// StateDisconnected means the watcher has not talked to the node yet.
	StateDisconnected State = iota
	// StateSubscribing means the watcher is establishing its first view of
	// the chain.
	StateSubscribing
	// StateSynced means the watcher holds a current tip.
	StateSynced
	// StateResubscribing means polling is failing and the watcher is
	// backing off. No invalidation is emitted in this state; a dropped
	// connection is not a reorg.
	StateResubscribing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateSubscribing:
		return "subscribing"
	case StateSynced:
		return "synced"
	case StateResubscribing:
		return "resubscribing"
	default:
		return "unknown"
	}
}

type event uint8

const (
	eventStart event = iota
	eventSyncOK
	eventFeedError
)

// transition is the pure lifecycle step: it maps the current state and an
// event to the next state.
func transition(s State, ev event) State {
	switch ev {
	case eventStart:
		if s == StateDisconnected {
			return StateSubscribing
		}
		return s
	case eventSyncOK:
		return StateSynced
	case eventFeedError:
		switch s {
		case StateDisconnected:
			return StateDisconnected
		case StateSubscribing:
			return StateSubscribing
		default:
			return StateResubscribing
		}
	default:
		return s
	}
}
