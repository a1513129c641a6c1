package subscription

// State is derived from the stored record and the current time; it is
// never persisted.
type State string

const (
	StateNone    State = "none"
	StateActive  State = "active"
	StateExpired State = "expired"
)

func (s State) String() string {
	return string(s)
}

// CanSubscribe reports whether a new subscription may replace this state.
func (s State) CanSubscribe() bool {
	return s != StateActive
}

// CanUnsubscribe reports whether the record may be cancelled.
func (s State) CanUnsubscribe() bool {
	return s == StateActive
}
