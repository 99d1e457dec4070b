package widgets

// Scrollable tracks a cursor over a list of items
type Scrollable struct {
	Cursor int
}

// Next moves the cursor down, stopping at the last item
func (s *Scrollable) Next(n int) {
	if s.Cursor < n-1 {
		s.Cursor++
	}
}

// Prev moves the cursor up, stopping at the first item
func (s *Scrollable) Prev() {
	if s.Cursor > 0 {
		s.Cursor--
	}
}

// Last moves the cursor to the final item
func (s *Scrollable) Last(n int) {
	s.Cursor = max(n-1, 0)
}

// Clamp keeps the cursor inside a list of n items
func (s *Scrollable) Clamp(n int) {
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// Window returns the visible range [start, end) of n items when only
// visible rows fit, keeping the cursor on screen
func (s Scrollable) Window(n, visible int) (int, int) {
	if visible <= 0 {
		visible = 1
	}
	start := 0
	if s.Cursor >= visible {
		start = s.Cursor - visible + 1
	}
	return start, min(start+visible, n)
}
