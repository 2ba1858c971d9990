package domain

// SlotStatus is the compliance of one team slot for one player
type SlotStatus string

const (
	SlotOK      SlotStatus = "ok"      // green
	SlotPartial SlotStatus = "partial" // orange: unlocked, below a threshold
	SlotAbsent  SlotStatus = "absent"  // red: not unlocked
	SlotEmpty   SlotStatus = "empty"   // the team has no character in this slot
)

func (s SlotStatus) String() string {
	return string(s)
}

// Color returns the badge color shown for the status
func (s SlotStatus) Color() string {
	switch s {
	case SlotOK:
		return "green"
	case SlotPartial:
		return "orange"
	case SlotAbsent:
		return "red"
	default:
		return "grey"
	}
}

// Confidence tells how a character reference was resolved
type Confidence string

const (
	ConfidenceExact Confidence = "exact"
	ConfidenceFuzzy Confidence = "fuzzy"
)
