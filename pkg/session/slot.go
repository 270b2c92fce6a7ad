package session

// Slot is the durable place a session token is kept. It holds at most one
// token and is shared by every context (tab, process) of the same user.
type Slot interface {
	// Load returns the stored token, or "" when the slot is empty.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Watcher delivers slot changes made elsewhere. fn receives the new
// token, "" meaning the slot was emptied. The returned stop function ends
// the subscription.
type Watcher interface {
	Watch(fn func(token string)) (stop func(), err error)
}

// SharedSlot is a slot whose changes can be observed.
type SharedSlot interface {
	Slot
	Watcher
}
