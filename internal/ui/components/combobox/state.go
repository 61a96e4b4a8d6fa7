package combobox

// NoCursor is the cursor value when no row is highlighted
const NoCursor = -1

// Phase is what the dropdown currently presents
type Phase int

const (
	Closed Phase = iota
	OpenLoading
	OpenResults
	OpenEmpty
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case OpenLoading:
		return "open-loading"
	case OpenResults:
		return "open-results"
	case OpenEmpty:
		return "open-empty"
	default:
		return "unknown"
	}
}

// State is the open flag, the highlight cursor and the length of the
// visible window. The methods below are its only transitions and each
// returns a new value, so a closed state never carries a cursor and an
// open one never points past the window.
type State struct {
	open   bool
	cursor int
	window int
}

// ClosedState returns the initial state
func ClosedState() State {
	return State{cursor: NoCursor}
}

// Open reports whether the list is open
func (s State) Open() bool { return s.open }

// Cursor returns the highlighted index or NoCursor
func (s State) Cursor() int { return s.cursor }

// Window returns the number of rows in the visible window
func (s State) Window() int { return s.window }

// Phase derives the presentation from the state and the loading flag
func (s State) Phase(loading bool) Phase {
	switch {
	case !s.open:
		return Closed
	case loading:
		return OpenLoading
	case s.window == 0:
		return OpenEmpty
	default:
		return OpenResults
	}
}

// reconcile resets the cursor when, and only when, the open flag or the
// window length changes. A same-length window with new contents keeps
// the cursor where it was.
func (s State) reconcile(open bool, window int) State {
	if window < 0 {
		window = 0
	}
	if open == s.open && window == s.window {
		return s
	}
	next := State{open: open, window: window, cursor: NoCursor}
	if open && window > 0 {
		next.cursor = 0
	}
	return next
}

// WithOpen opens the list
func (s State) WithOpen() State {
	return s.reconcile(true, s.window)
}

// WithClosed closes the list and clears the cursor
func (s State) WithClosed() State {
	return s.reconcile(false, s.window)
}

// WithWindow records a new window length
func (s State) WithWindow(n int) State {
	return s.reconcile(s.open, n)
}

// Next moves the cursor down one row, stopping at the last row
func (s State) Next() State {
	if !s.open || s.window == 0 {
		return s
	}
	switch {
	case s.cursor == NoCursor:
		s.cursor = 0
	case s.cursor < s.window-1:
		s.cursor++
	}
	return s
}

// Prev moves the cursor up one row, stopping at the first row
func (s State) Prev() State {
	if !s.open || s.window == 0 {
		return s
	}
	switch {
	case s.cursor == NoCursor:
		s.cursor = 0
	case s.cursor > 0:
		s.cursor--
	}
	return s
}

// Hover highlights row i. Indexes outside the window are ignored.
func (s State) Hover(i int) State {
	if !s.open || i < 0 || i >= s.window {
		return s
	}
	s.cursor = i
	return s
}
