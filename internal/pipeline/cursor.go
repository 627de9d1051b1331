package pipeline

// Cursor tracks the current position in the pipeline. Its index never
// decreases and is bounded by [0, Len()]; reaching Len() means the pipeline
// is exhausted.
type Cursor struct {
	index int
}

// Index returns the current module index.
func (c *Cursor) Index() int {
	return c.index
}

// Current returns the module at the cursor, or false when exhausted.
func (c *Cursor) Current() (ModuleID, bool) {
	return At(c.index)
}

// Done reports whether every module has been passed.
func (c *Cursor) Done() bool {
	return c.index >= len(order)
}

// Advance moves to the next module. It reports whether a module remains.
// Advancing an exhausted cursor is a no-op.
func (c *Cursor) Advance() bool {
	if c.index < len(order) {
		c.index++
	}
	return !c.Done()
}

// Exhaust jumps straight to the end of the pipeline.
func (c *Cursor) Exhaust() {
	c.index = len(order)
}

// Remaining returns how many modules are left, including the current one.
func (c *Cursor) Remaining() int {
	return len(order) - c.index
}
