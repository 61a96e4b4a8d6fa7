package navigation

// Service keeps a highlighted row inside a fixed-height viewport
type Service struct {
	state    State
	onScroll func(ViewportChangedEvent)
}

// NewService creates a viewport showing height rows
func NewService(height int) *Service {
	s := &Service{
		state: State{Cursor: NoCursor},
	}
	s.SetViewportHeight(height)
	return s
}

// OnScroll registers a callback for viewport changes
func (s *Service) OnScroll(fn func(ViewportChangedEvent)) {
	s.onScroll = fn
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height. Values below one are raised to one.
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.clampOffset()
	s.ensureVisible()
}

// SetRows updates the number of rows behind the viewport
func (s *Service) SetRows(rows int) {
	if rows < 0 {
		rows = 0
	}
	s.state.Rows = rows
	if s.state.Cursor >= rows {
		s.state.Cursor = NoCursor
	}
	s.clampOffset()
}

// Visible returns the half-open row range [start, end) currently shown
func (s *Service) Visible() (start, end int) {
	start = s.state.ViewportOffset
	end = start + s.state.ViewportHeight
	if end > s.state.Rows {
		end = s.state.Rows
	}
	if start > end {
		start = end
	}
	return start, end
}

// MoveToIndex highlights a row and scrolls it into view with nearest
// alignment: the viewport moves only as far as needed. An out of range
// index clears the cursor and leaves the viewport alone.
func (s *Service) MoveToIndex(index int) {
	if index < 0 || index >= s.state.Rows {
		s.state.Cursor = NoCursor
		return
	}
	s.state.Cursor = index
	s.ensureVisible()
}

// Reset clears the cursor and scrolls to the top
func (s *Service) Reset() {
	s.state.Cursor = NoCursor
	s.setOffset(0)
}

func (s *Service) clampOffset() {
	maxOffset := s.state.Rows - s.state.ViewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.state.ViewportOffset > maxOffset {
		s.setOffset(maxOffset)
	}
}

func (s *Service) ensureVisible() {
	if s.state.Cursor == NoCursor {
		return
	}
	// Ensure cursor is visible within viewport
	if s.state.Cursor < s.state.ViewportOffset {
		s.setOffset(s.state.Cursor)
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.setOffset(s.state.Cursor - s.state.ViewportHeight + 1)
	}
}

func (s *Service) setOffset(offset int) {
	if offset == s.state.ViewportOffset {
		return
	}
	s.state.ViewportOffset = offset
	if s.onScroll != nil {
		s.onScroll(ViewportChangedEvent{
			Offset: s.state.ViewportOffset,
			Height: s.state.ViewportHeight,
		})
	}
}
