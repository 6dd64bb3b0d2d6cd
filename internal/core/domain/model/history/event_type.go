package history

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// EventType classifies a history entry.
type EventType int

const (
	Unknown EventType = iota
	Received
	LabelAssigned
	MarkedReady
	Delivered
	ProblemReported
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		Unknown:         "Unknown",
		Received:        "Received",
		LabelAssigned:   "LabelAssigned",
		MarkedReady:     "MarkedReady",
		Delivered:       "Delivered",
		ProblemReported: "ProblemReported",
	}
}

func (t EventType) Validate() error {
	if t <= Unknown || t > ProblemReported {
		return errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

func (t EventType) String() string {
	if str, ok := getEventTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// ParseEventType is the inverse of String. Storage keeps event types as text.
func ParseEventType(s string) (EventType, error) {
	for t, str := range getEventTypeStrings() {
		if t != Unknown && str == s {
			return t, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a valid event type", s))
}
