// Package bstviz implements an unbalanced binary search tree over int keys
// whose insert, search and delete operations record every decision they make
// as a step log, so a caller can replay an operation one step at a time.
//
// A Tree is not safe for concurrent use. Callers that share one tree between
// goroutines must serialize access themselves.
package bstviz

import "fmt"

// Tree is an ordered set of distinct ints stored as a plain BST.
type Tree struct {
	root  *node
	size  int
	steps []Step

	log      Logger
	observer Observer
}

// New returns an empty tree.
func New(options ...Option) *Tree {
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	return &Tree{
		log:      opts.logger,
		observer: opts.observer,
	}
}

// record appends a step carrying a snapshot of the tree as it is right now.
func (t *Tree) record(e Event) {
	t.steps = append(t.steps, Step{Event: e, Tree: takeSnapshot(t.root, t.size)})
}

func (t *Tree) resetSteps() {
	t.steps = make([]Step, 0, height(t.root)+3)
}

func (t *Tree) finish(op Op, ok bool) {
	t.observer.ObserveOp(op, ok, len(t.steps))
	t.observer.ObserveShape(t.size, t.Height())
}

// Insert adds value to the tree. It returns false, leaving the tree untouched,
// if value is already present. Every comparison made on the way down is
// recorded as a step.
func (t *Tree) Insert(value int) bool {
	t.resetSteps()

	ok := t.insert(value)
	t.finish(OpInsert, ok)
	if ok {
		t.log.Info("inserted", "value", value, "size", t.size)
	} else {
		t.log.Debug("insert rejected duplicate", "value", value)
	}
	return ok
}

func (t *Tree) insert(value int) bool {
	if t.root == nil {
		t.root = newNode(value, nil)
		t.size++
		t.record(InsertRoot{Value: value})
		return true
	}
	return t.insertAt(t.root, value)
}

func (t *Tree) insertAt(n *node, value int) bool {
	switch {
	case value == n.value:
		t.record(Duplicate{Value: value, Current: n.value})
		return false

	case value < n.value:
		if n.left == nil {
			n.setLeft(newNode(value, n))
			t.size++
			t.record(InsertChild{Value: value, Parent: n.value, Dir: Left})
			return true
		}
		t.record(Descend{Value: value, Current: n.value, Dir: Left})
		return t.insertAt(n.left, value)

	default:
		if n.right == nil {
			n.setRight(newNode(value, n))
			t.size++
			t.record(InsertChild{Value: value, Parent: n.value, Dir: Right})
			return true
		}
		t.record(Descend{Value: value, Current: n.value, Dir: Right})
		return t.insertAt(n.right, value)
	}
}

// Search reports whether value is present, recording a step for every node
// visited.
func (t *Tree) Search(value int) bool {
	t.resetSteps()

	found := t.searchAt(t.root, value)
	t.finish(OpSearch, found)
	return found
}

func (t *Tree) searchAt(n *node, value int) bool {
	if n == nil {
		t.record(NotFound{Value: value})
		return false
	}

	t.record(Visit{Value: value, Current: n.value})

	switch {
	case value == n.value:
		t.record(Found{Value: value, Current: n.value})
		return true
	case value < n.value:
		return t.searchAt(n.left, value)
	default:
		return t.searchAt(n.right, value)
	}
}

// Delete removes value from the tree. It returns false, leaving the tree
// untouched, if value is not present. A node with two children takes the key
// of its in-order successor, which is then removed from the right subtree.
func (t *Tree) Delete(value int) bool {
	t.resetSteps()

	root, deleted := t.deleteAt(t.root, value)
	t.root = root
	if root != nil {
		root.parent = nil
	}
	if deleted {
		t.size--
	}

	t.finish(OpDelete, deleted)
	if deleted {
		t.log.Info("deleted", "value", value, "size", t.size)
	} else {
		t.log.Debug("delete found nothing", "value", value)
	}
	return deleted
}

// deleteAt removes value from the subtree rooted at n and returns the new
// subtree root. The caller owns re-attaching it and fixing its parent link.
func (t *Tree) deleteAt(n *node, value int) (*node, bool) {
	if n == nil {
		t.record(DeleteNotFound{Value: value})
		return nil, false
	}

	t.record(DeleteVisit{Value: value, Current: n.value})

	if value < n.value {
		l, deleted := t.deleteAt(n.left, value)
		n.setLeft(l)
		return n, deleted
	}
	if value > n.value {
		r, deleted := t.deleteAt(n.right, value)
		n.setRight(r)
		return n, deleted
	}

	switch {
	case n.left == nil:
		e := DeleteNoLeft{Value: value}
		if n.right != nil {
			r := n.right.value
			e.Replacement = &r
		}
		t.record(e)
		return detach(n, n.right), true

	case n.right == nil:
		t.record(DeleteNoRight{Value: value, Replacement: n.left.value})
		return detach(n, n.left), true

	default:
		succ := minNode(n.right)
		t.record(DeleteTwoChildren{Value: value, Successor: succ.value})
		n.value = succ.value
		r, deleted := t.deleteAt(n.right, succ.value)
		if !deleted {
			panic(fmt.Sprintf("bstviz: successor %d vanished from right subtree", succ.value))
		}
		n.setRight(r)
		return n, true
	}
}

// detach unlinks n from the tree and returns the child that replaces it.
func detach(n, replacement *node) *node {
	n.left, n.right, n.parent = nil, nil, nil
	return replacement
}

// Clear removes every value and empties the step log.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
	t.steps = nil

	t.finish(OpClear, true)
	t.log.Info("cleared")
}

// Height returns -1 for an empty tree, 0 for a single node, and otherwise the
// number of edges on the longest root to leaf path. It is recomputed on every
// call.
func (t *Tree) Height() int {
	return height(t.root)
}

// Size returns the number of values in the tree.
func (t *Tree) Size() int {
	return t.size
}

// IsEmpty reports whether the tree has no root.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Min returns the smallest value, or false if the tree is empty.
func (t *Tree) Min() (int, bool) {
	if t.root == nil {
		return 0, false
	}
	return minNode(t.root).value, true
}

// Max returns the largest value, or false if the tree is empty.
func (t *Tree) Max() (int, bool) {
	if t.root == nil {
		return 0, false
	}
	return maxNode(t.root).value, true
}

// LastSteps returns the step log of the most recent Insert, Search or Delete.
// The slice is replaced, not modified, by the next such call.
func (t *Tree) LastSteps() []Step {
	if t.steps == nil {
		return []Step{}
	}
	return t.steps
}

// Snapshot returns a deep copy of the tree's current shape.
func (t *Tree) Snapshot() Snapshot {
	return takeSnapshot(t.root, t.size)
}

func (t *Tree) String() string {
	return t.Snapshot().String()
}

// Check walks the whole tree and verifies key ordering, parent links and the
// size counter. A non-nil result wraps ErrCorruption.
func (t *Tree) Check() error {
	if t.root != nil && t.root.parent != nil {
		return t.corrupt("root %d has parent %d", t.root.value, t.root.parent.value)
	}

	count := 0
	var walk func(n *node, lo, hi *int) error
	walk = func(n *node, lo, hi *int) error {
		if n == nil {
			return nil
		}
		count++
		if lo != nil && n.value <= *lo {
			return t.corrupt("key %d not greater than lower bound %d", n.value, *lo)
		}
		if hi != nil && n.value >= *hi {
			return t.corrupt("key %d not less than upper bound %d", n.value, *hi)
		}
		for _, c := range []*node{n.left, n.right} {
			if c != nil && c.parent != n {
				return t.corrupt("child %d of %d has a stale parent link", c.value, n.value)
			}
		}
		if err := walk(n.left, lo, &n.value); err != nil {
			return err
		}
		return walk(n.right, &n.value, hi)
	}
	if err := walk(t.root, nil, nil); err != nil {
		return err
	}

	if count != t.size {
		return t.corrupt("size counter %d but %d nodes reachable", t.size, count)
	}
	return nil
}

func (t *Tree) corrupt(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrCorruption, fmt.Sprintf(format, args...))
	t.log.Error("invariant check failed", "error", err)
	return err
}
