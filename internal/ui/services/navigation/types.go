package navigation

// State holds the scroll position of a row viewport
type State struct {
	Cursor         int // NoCursor when nothing is highlighted
	ViewportOffset int
	ViewportHeight int
	Rows           int
}

// NoCursor marks a viewport without a highlighted row
const NoCursor = -1

// ViewportChangedEvent reports a scroll
type ViewportChangedEvent struct {
	Offset int
	Height int
}
