package events

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusSoldOut   EventStatus = "sold_out"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// IsBookable reports whether tickets can currently be sold for this status
func (s EventStatus) IsBookable() bool {
	return s == EventStatusPublished
}

// IsTerminal reports whether the status admits no further transitions
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCancelled || s == EventStatusCompleted
}

// CanTransitionTo validates the event lifecycle state machine
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	switch s {
	case EventStatusDraft:
		return target == EventStatusPublished || target == EventStatusCancelled
	case EventStatusPublished:
		return target == EventStatusSoldOut || target == EventStatusCancelled || target == EventStatusCompleted
	case EventStatusSoldOut:
		return target == EventStatusPublished || target == EventStatusCancelled || target == EventStatusCompleted
	default:
		return false
	}
}

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusSoldOut, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}
