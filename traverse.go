package bstviz

import (
	"fmt"
	"strings"
)

// Order selects a traversal order.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
	LevelOrder
)

var orderNames = [...]string{
	InOrder:    "inorder",
	PreOrder:   "preorder",
	PostOrder:  "postorder",
	LevelOrder: "levelorder",
}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder accepts "in", "pre", "post" and "level", with or without an
// "order" suffix, in any case.
func ParseOrder(s string) (Order, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "order")
	name = strings.TrimSuffix(name, "-")
	name = strings.TrimSuffix(name, "_")
	switch name {
	case "in":
		return InOrder, nil
	case "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	case "level":
		return LevelOrder, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Traverse returns every value in the requested order. It records no steps.
// An unknown order yields nil.
func (t *Tree) Traverse(order Order) []int {
	out := make([]int, 0, t.size)
	switch order {
	case InOrder:
		inorder(t.root, &out)
	case PreOrder:
		preorder(t.root, &out)
	case PostOrder:
		postorder(t.root, &out)
	case LevelOrder:
		levelorder(t.root, &out)
	default:
		return nil
	}
	return out
}

// InOrder returns the values in ascending order.
func (t *Tree) InOrder() []int { return t.Traverse(InOrder) }

// PreOrder returns each node before its left then right subtree.
func (t *Tree) PreOrder() []int { return t.Traverse(PreOrder) }

// PostOrder returns each node after its left then right subtree.
func (t *Tree) PostOrder() []int { return t.Traverse(PostOrder) }

// LevelOrder returns the values breadth first, left to right within a level.
func (t *Tree) LevelOrder() []int { return t.Traverse(LevelOrder) }

func inorder(n *node, out *[]int) {
	if n == nil {
		return
	}
	inorder(n.left, out)
	*out = append(*out, n.value)
	inorder(n.right, out)
}

func preorder(n *node, out *[]int) {
	if n == nil {
		return
	}
	*out = append(*out, n.value)
	preorder(n.left, out)
	preorder(n.right, out)
}

func postorder(n *node, out *[]int) {
	if n == nil {
		return
	}
	postorder(n.left, out)
	postorder(n.right, out)
	*out = append(*out, n.value)
}

func levelorder(root *node, out *[]int) {
	if root == nil {
		return
	}
	queue := []*node{root}
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		*out = append(*out, n.value)
		if n.left != nil {
			queue = append(queue, n.left)
		}
		if n.right != nil {
			queue = append(queue, n.right)
		}
	}
}
