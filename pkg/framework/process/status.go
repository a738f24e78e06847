package process

// Status is the result of one processing cycle
type Status int32

const (
	// StatusNormal means keep going
	StatusNormal Status = iota
	// StatusTail means output continues after the input went silent
	StatusTail
	// StatusError means processing cannot continue and the host should deactivate
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusTail:
		return "tail"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
