package paylock

// Event is a notification emitted by a handler about a state transition that
// took place. Events are returned as part of the DeliverResult and are
// persisted together with the state change or not at all.
type Event interface {
	Persistent

	// EventKind returns the name of the event, ie "PaymentCommitted".
	EventKind() string
}

// Participant is implemented by events that concern one or more accounts.
// It allows to filter the event history by address.
type Participant interface {
	Participants() []Address
}
