package logic

import (
	"wardview/internal/ui/state"
)

// Navigator handles cursor movement and viewport management over a row
// list. Detail rows are visible but never selected; the cursor steps over
// them.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalRows      int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalRows int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalRows = totalRows
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move steps the cursor by delta, skipping unselectable rows. Returns the
// new index and offset.
func (n *Navigator) Move(rows []state.Row, delta int) (int, int) {
	if len(rows) == 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return 0, 0
	}

	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}

	idx := n.selectedIndex
	for moved := 0; moved < delta; moved++ {
		next := idx + step
		for next >= 0 && next < len(rows) && !rows[next].Selectable() {
			next += step
		}
		if next < 0 || next >= len(rows) {
			break
		}
		idx = next
	}

	n.selectedIndex = idx
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// JumpTop moves to the first selectable row.
func (n *Navigator) JumpTop(rows []state.Row) (int, int) {
	for i, row := range rows {
		if row.Selectable() {
			return n.SetSelectedIndex(i)
		}
	}
	return n.SetSelectedIndex(0)
}

// JumpBottom moves to the last selectable row.
func (n *Navigator) JumpBottom(rows []state.Row) (int, int) {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Selectable() {
			return n.SetSelectedIndex(i)
		}
	}
	return n.SetSelectedIndex(0)
}

// Clamp keeps the cursor inside the row list after a rebuild, nudging it
// off any unselectable row it landed on.
func (n *Navigator) Clamp(rows []state.Row) (int, int) {
	if len(rows) == 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return 0, 0
	}
	if n.selectedIndex >= len(rows) {
		n.selectedIndex = len(rows) - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	if !rows[n.selectedIndex].Selectable() {
		// Prefer the next selectable row above, then below
		for i := n.selectedIndex; i >= 0; i-- {
			if rows[i].Selectable() {
				n.selectedIndex = i
				n.ensureSelectedVisible()
				return n.selectedIndex, n.viewportOffset
			}
		}
		for i := n.selectedIndex + 1; i < len(rows); i++ {
			if rows[i].Selectable() {
				n.selectedIndex = i
				break
			}
		}
	}
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// ensureSelectedVisible adjusts the viewport to keep the selected row on
// screen, leaving room for the scroll indicator lines when they appear.
func (n *Navigator) ensureSelectedVisible() {
	totalItems := n.totalRows

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	needsTopIndicator := n.viewportOffset > 0
	needsBottomIndicator := n.viewportOffset+n.viewportHeight < totalItems

	if !needsBottomIndicator && needsTopIndicator {
		remainingItems := totalItems - n.viewportOffset
		availableSpace := n.viewportHeight - 1 // -1 for top indicator
		if remainingItems > availableSpace {
			needsBottomIndicator = true
		}
	}

	effectiveHeight := n.viewportHeight
	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	if n.selectedIndex >= n.viewportOffset+effectiveHeight {
		newOffset := n.selectedIndex - effectiveHeight + 1

		maxPossibleOffset := totalItems - effectiveHeight
		if maxPossibleOffset < 0 {
			maxPossibleOffset = 0
		}
		if newOffset > maxPossibleOffset {
			newOffset = maxPossibleOffset
		}
		if newOffset < 0 {
			newOffset = 0
		}

		n.viewportOffset = newOffset
	}

	maxOffset := totalItems - effectiveHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
