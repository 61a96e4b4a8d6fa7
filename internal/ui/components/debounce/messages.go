package debounce

// tickMsg is delivered when a debounce timer expires. Only the tick whose
// seq matches the input's current seq is live; older ticks were cancelled.
type tickMsg struct {
	id  int
	seq int
}

// QueryChangedMsg is emitted when the buffer settles and no OnQueryChanged
// callback is set
type QueryChangedMsg struct {
	ID    int
	Query string
}

// SubmitMsg is emitted for an Enter that no OnKeyDown handler consumed
type SubmitMsg struct {
	ID    int
	Value string
}
