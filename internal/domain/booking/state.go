package booking

import "strings"

// State classifies bookings relative to now or by status for listing.
type State int

const (
	StateAll State = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[State]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

var statesByName = func() map[string]State {
	m := make(map[string]State, len(stateNames))
	for s, name := range stateNames {
		m[name] = s
	}
	return m
}()

// ParseState is case-insensitive. Unknown tokens fail with ErrUnsupportedState.
func ParseState(token string) (State, error) {
	s, ok := statesByName[strings.ToUpper(token)]
	if !ok {
		return 0, ErrUnsupportedState
	}
	return s, nil
}

// States lists every variant in declaration order.
func States() []State {
	return []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
