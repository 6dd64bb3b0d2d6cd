package kernel

// DomainEvent is a notification returned by an aggregate operation. Command
// handlers collect them and publish after the unit of work commits.
type DomainEvent interface {
	// EventType returns a stable name such as "CylinderMarkedReady".
	EventType() string
}
