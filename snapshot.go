package bstviz

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// NodeSnapshot is an immutable copy of one node and its subtrees. Absent
// children are nil and serialize as an explicit null.
type NodeSnapshot struct {
	Value int           `json:"value"`
	Left  *NodeSnapshot `json:"left"`
	Right *NodeSnapshot `json:"right"`
}

// Snapshot is the full structural state of a tree at one instant.
type Snapshot struct {
	Root    *NodeSnapshot `json:"root"`
	Size    int           `json:"size"`
	Height  int           `json:"height"`
	IsEmpty bool          `json:"is_empty"`
}

func takeSnapshot(root *node, size int) Snapshot {
	rs, h := copySubtree(root)
	return Snapshot{
		Root:    rs,
		Size:    size,
		Height:  h,
		IsEmpty: root == nil,
	}
}

// copySubtree deep-copies n and returns the copy with its height.
func copySubtree(n *node) (*NodeSnapshot, int) {
	if n == nil {
		return nil, -1
	}
	l, lh := copySubtree(n.left)
	r, rh := copySubtree(n.right)
	return &NodeSnapshot{Value: n.value, Left: l, Right: r}, 1 + max(lh, rh)
}

const (
	markerNil  byte = 0
	markerNode byte = 1
)

// Fingerprint hashes the shape and keys of the snapshot. Two snapshots with
// the same fingerprint render identically.
func (s Snapshot) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(s.Size))
	_, _ = d.Write(buf[:8])

	var walk func(n *NodeSnapshot)
	walk = func(n *NodeSnapshot) {
		if n == nil {
			_, _ = d.Write([]byte{markerNil})
			return
		}
		buf[0] = markerNode
		binary.LittleEndian.PutUint64(buf[1:], uint64(n.Value))
		_, _ = d.Write(buf[:])
		walk(n.Left)
		walk(n.Right)
	}
	walk(s.Root)
	return d.Sum64()
}

// String renders the tree sideways: the right subtree above its parent and
// the left subtree below it.
//
//	│   ┌── 15
//	└── 10
//	    └── 5
func (s Snapshot) String() string {
	if s.IsEmpty {
		return "Empty BST"
	}
	var sb strings.Builder
	renderASCII(&sb, s.Root, "", true)
	return strings.TrimRight(sb.String(), "\n")
}

func renderASCII(sb *strings.Builder, n *NodeSnapshot, prefix string, isLeft bool) {
	if n == nil {
		return
	}
	rightPrefix, leftPrefix, connector := "    ", "│   ", "┌── "
	if isLeft {
		rightPrefix, leftPrefix, connector = "│   ", "    ", "└── "
	}
	renderASCII(sb, n.Right, prefix+rightPrefix, false)
	sb.WriteString(prefix)
	sb.WriteString(connector)
	sb.WriteString(strconv.Itoa(n.Value))
	sb.WriteByte('\n')
	renderASCII(sb, n.Left, prefix+leftPrefix, true)
}
