// Package cursor tracks which record of a collection is selected.
package cursor

// Cursor is an optional index into a collection whose length can change
// between operations. The zero value selects nothing.
type Cursor struct {
	index int
	valid bool
}

// At returns a cursor selecting i.
func At(i int) Cursor {
	return Cursor{index: i, valid: true}
}

// Selected reports the selected index, if any.
func (c Cursor) Selected() (int, bool) {
	return c.index, c.valid
}

// Select sets the cursor to i. The caller checks i against the collection
// it just observed.
func (c *Cursor) Select(i int) {
	c.index = i
	c.valid = true
}

// Clear drops the selection.
func (c *Cursor) Clear() {
	c.index = 0
	c.valid = false
}

// MoveNext advances by one, wrapping to 0 after the last index.
func (c *Cursor) MoveNext(length int) {
	if !c.valid || length <= 0 {
		return
	}
	if c.index >= length-1 {
		c.index = 0
	} else {
		c.index++
	}
}

// MovePrev steps back by one, wrapping to length-1 before index 0.
func (c *Cursor) MovePrev(length int) {
	if !c.valid || length <= 0 {
		return
	}
	if c.index <= 0 {
		c.index = length - 1
	} else {
		c.index--
	}
}

// Rebase reconciles the cursor with a collection of the given length. An
// empty collection clears it; otherwise the index is kept when still valid
// and clamped into [0, length-1] when not. A cleared cursor over a non-empty
// collection selects 0.
func (c *Cursor) Rebase(length int) {
	if length <= 0 {
		c.Clear()
		return
	}
	switch {
	case !c.valid, c.index < 0:
		c.Select(0)
	case c.index >= length:
		c.Select(length - 1)
	}
}

// Removed moves the cursor after the record at index was removed from a
// collection that now has length records: it steps back one unless index
// was the first, then rebases.
func (c *Cursor) Removed(index, length int) {
	if index > 0 {
		c.Select(index - 1)
	} else {
		c.Select(0)
	}
	c.Rebase(length)
}
