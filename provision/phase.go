package provision

// Phase describes where a Writer is in its single run.
type Phase uint8

const (
	PhasePending Phase = iota
	PhaseInitializing
	PhaseVerifying
	PhaseIdle
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseInitializing:
		return "initializing"
	case PhaseVerifying:
		return "verifying"
	case PhaseIdle:
		return "idle"
	default:
		return "unknown"
	}
}
