package bstviz

// node is a single BST node. left and right own their subtrees; parent is a
// back-reference only and must be repaired whenever ownership changes.
type node struct {
	value  int
	left   *node
	right  *node
	parent *node
}

func newNode(value int, parent *node) *node {
	return &node{value: value, parent: parent}
}

// setLeft attaches child as n's left subtree and repoints its parent link.
func (n *node) setLeft(child *node) {
	n.left = child
	if child != nil {
		child.parent = n
	}
}

// setRight attaches child as n's right subtree and repoints its parent link.
func (n *node) setRight(child *node) {
	n.right = child
	if child != nil {
		child.parent = n
	}
}

// minNode returns the leftmost node of the subtree rooted at n.
func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// maxNode returns the rightmost node of the subtree rooted at n.
func maxNode(n *node) *node {
	for n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the in-order successor of n using parent links, or nil.
func successor(n *node) *node {
	if n.right != nil {
		return minNode(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// predecessor returns the in-order predecessor of n using parent links, or nil.
func predecessor(n *node) *node {
	if n.left != nil {
		return maxNode(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

func height(n *node) int {
	if n == nil {
		return -1
	}
	return 1 + max(height(n.left), height(n.right))
}
