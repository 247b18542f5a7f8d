package triage

// Level is an Emergency Severity Index (ESI) triage level.
// ESI1 is the most urgent, ESI5 the least.
type Level int

const (
	ESI1 Level = 1
	ESI2 Level = 2
	ESI3 Level = 3
	ESI4 Level = 4
	ESI5 Level = 5
)

func (l Level) String() string {
	switch l {
	case ESI1:
		return "ESI-1"
	case ESI2:
		return "ESI-2"
	case ESI3:
		return "ESI-3"
	case ESI4:
		return "ESI-4"
	case ESI5:
		return "ESI-5"
	}
	return "ESI-unknown"
}

// Score is the ephemeral result of classifying one complaint. It is computed
// per request and never persisted.
type Score struct {
	// Severity is the overall severity on a 1..10 scale: the clamped symptom
	// weight sum plus the complaint category offset.
	Severity int `json:"severity"`
	// Level is the triage level derived from the per-category symptom score.
	// Severity and Level are computed independently; they are not added
	// together.
	Level Level `json:"level"`
}

// Category offsets applied when computing the overall severity score.
const (
	offsetCardiac      = 3
	offsetTrauma       = 4
	offsetRespiratory  = 3
	offsetNeurological = 2
	offsetGeneral      = 1
)

// Complaint categories recognized by the classifier. Any other category
// falls back to the general weight table.
const (
	CategoryCardiac      = "cardiac"
	CategoryTrauma       = "trauma"
	CategoryRespiratory  = "respiratory"
	CategoryNeurological = "neurological"
	CategoryGeneral      = "general"
)
