package booking

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// APPROVED is final; a REJECTED booking may still be decided again.
var allowedTransitions = map[Status][]Status{
	StatusWaiting:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusApproved, StatusRejected},
	StatusApproved: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
