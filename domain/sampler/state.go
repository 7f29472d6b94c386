package sampler

// State enumerates the phases of one sampling cycle.
type State int32

const (
	StateIdle State = iota
	StateSampling
	StateScoring
	StateRendering
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	case StateScoring:
		return "scoring"
	case StateRendering:
		return "rendering"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
