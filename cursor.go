package bstviz

// Cursor provides ordered iteration over the tree's values. It moves through
// parent links, so it keeps no path stack. Any Insert, Delete or Clear on the
// tree invalidates the cursor's position; reposition it with First, Last or
// Seek before continuing.
type Cursor struct {
	tree *Tree
	n    *node // nil when not positioned on a value
}

// Cursor returns an unpositioned cursor over t.
func (t *Tree) Cursor() *Cursor {
	return &Cursor{tree: t}
}

// First positions the cursor at the smallest value.
// Returns false if the tree is empty.
func (c *Cursor) First() (int, bool) {
	c.n = nil
	if c.tree.root != nil {
		c.n = minNode(c.tree.root)
	}
	return c.current()
}

// Last positions the cursor at the largest value.
// Returns false if the tree is empty.
func (c *Cursor) Last() (int, bool) {
	c.n = nil
	if c.tree.root != nil {
		c.n = maxNode(c.tree.root)
	}
	return c.current()
}

// Seek positions the cursor at the smallest value >= target.
// Returns false if every value is below target.
func (c *Cursor) Seek(target int) (int, bool) {
	c.n = nil
	n := c.tree.root
	for n != nil {
		switch {
		case n.value == target:
			c.n = n
			return c.current()
		case target < n.value:
			// n is a candidate; a smaller one may exist on the left
			c.n = n
			n = n.left
		default:
			n = n.right
		}
	}
	return c.current()
}

// Next advances to the next larger value.
// Returns false once the cursor moves past the last value.
func (c *Cursor) Next() (int, bool) {
	if c.n == nil {
		return 0, false
	}
	c.n = successor(c.n)
	return c.current()
}

// Prev moves to the next smaller value.
// Returns false once the cursor moves before the first value.
func (c *Cursor) Prev() (int, bool) {
	if c.n == nil {
		return 0, false
	}
	c.n = predecessor(c.n)
	return c.current()
}

// Valid reports whether the cursor is positioned on a value.
func (c *Cursor) Valid() bool {
	return c.n != nil
}

// Value returns the value under the cursor, or 0 if it is not valid.
func (c *Cursor) Value() int {
	if c.n == nil {
		return 0
	}
	return c.n.value
}

func (c *Cursor) current() (int, bool) {
	if c.n == nil {
		return 0, false
	}
	return c.n.value, true
}
