package bstviz

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Action tags a step record. The values are part of the wire format.
type Action string

const (
	ActionInsertRoot        Action = "insert_root"
	ActionDuplicateFound    Action = "duplicate_found"
	ActionInsertLeft        Action = "insert_left"
	ActionInsertRight       Action = "insert_right"
	ActionTraverseLeft      Action = "traverse_left"
	ActionTraverseRight     Action = "traverse_right"
	ActionVisitNode         Action = "visit_node"
	ActionFound             Action = "found"
	ActionNotFound          Action = "not_found"
	ActionDeleteVisit       Action = "delete_visit"
	ActionDeleteNotFound    Action = "delete_not_found"
	ActionDeleteNoLeft      Action = "delete_no_left"
	ActionDeleteNoRight     Action = "delete_no_right"
	ActionDeleteTwoChildren Action = "delete_two_children"
)

// Direction is the side of a parent a descent or attachment goes to.
type Direction uint8

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Event is the action-specific payload of a Step. Every action kind has its
// own concrete type so a step can only carry the fields that kind defines.
type Event interface {
	fmt.Stringer
	Action() Action
	// Target is the value the public operation was called with.
	Target() int
	event()
}

// InsertRoot records the creation of the root of an empty tree.
type InsertRoot struct {
	Value int
}

// Duplicate records an insert that met an equal key.
type Duplicate struct {
	Value   int
	Current int
}

// Descend records an insert comparison that continues into an existing child.
type Descend struct {
	Value   int
	Current int
	Dir     Direction
}

// InsertChild records the attachment of a new leaf under Parent.
type InsertChild struct {
	Value  int
	Parent int
	Dir    Direction
}

// Visit records a search arriving at a node.
type Visit struct {
	Value   int
	Current int
}

// Found records a successful search comparison.
type Found struct {
	Value   int
	Current int
}

// NotFound records a search falling off the tree.
type NotFound struct {
	Value int
}

// DeleteVisit records a delete arriving at a node.
type DeleteVisit struct {
	Value   int
	Current int
}

// DeleteNotFound records a delete falling off the tree.
type DeleteNotFound struct {
	Value int
}

// DeleteNoLeft records a matched node being replaced by its right subtree.
// Replacement is nil when the node was a leaf.
type DeleteNoLeft struct {
	Value       int
	Replacement *int
}

// DeleteNoRight records a matched node being replaced by its left subtree.
type DeleteNoRight struct {
	Value       int
	Replacement int
}

// DeleteTwoChildren records the promotion of the in-order successor into a
// matched node that has both subtrees.
type DeleteTwoChildren struct {
	Value     int
	Successor int
}

func (InsertRoot) Action() Action     { return ActionInsertRoot }
func (Duplicate) Action() Action      { return ActionDuplicateFound }
func (Visit) Action() Action          { return ActionVisitNode }
func (Found) Action() Action          { return ActionFound }
func (NotFound) Action() Action       { return ActionNotFound }
func (DeleteVisit) Action() Action    { return ActionDeleteVisit }
func (DeleteNotFound) Action() Action { return ActionDeleteNotFound }
func (DeleteNoLeft) Action() Action   { return ActionDeleteNoLeft }
func (DeleteNoRight) Action() Action  { return ActionDeleteNoRight }

func (DeleteTwoChildren) Action() Action { return ActionDeleteTwoChildren }

func (e Descend) Action() Action {
	if e.Dir == Left {
		return ActionTraverseLeft
	}
	return ActionTraverseRight
}

func (e InsertChild) Action() Action {
	if e.Dir == Left {
		return ActionInsertLeft
	}
	return ActionInsertRight
}

func (e InsertRoot) Target() int        { return e.Value }
func (e Duplicate) Target() int         { return e.Value }
func (e Descend) Target() int           { return e.Value }
func (e InsertChild) Target() int       { return e.Value }
func (e Visit) Target() int             { return e.Value }
func (e Found) Target() int             { return e.Value }
func (e NotFound) Target() int          { return e.Value }
func (e DeleteVisit) Target() int       { return e.Value }
func (e DeleteNotFound) Target() int    { return e.Value }
func (e DeleteNoLeft) Target() int      { return e.Value }
func (e DeleteNoRight) Target() int     { return e.Value }
func (e DeleteTwoChildren) Target() int { return e.Value }

func (InsertRoot) event()        {}
func (Duplicate) event()         {}
func (Descend) event()           {}
func (InsertChild) event()       {}
func (Visit) event()             {}
func (Found) event()             {}
func (NotFound) event()          {}
func (DeleteVisit) event()       {}
func (DeleteNotFound) event()    {}
func (DeleteNoLeft) event()      {}
func (DeleteNoRight) event()     {}
func (DeleteTwoChildren) event() {}

func (e InsertRoot) String() string {
	return fmt.Sprintf("insert %d as root", e.Value)
}

func (e Duplicate) String() string {
	return fmt.Sprintf("%d already present", e.Value)
}

func (e Descend) String() string {
	op := "<"
	if e.Dir == Right {
		op = ">"
	}
	return fmt.Sprintf("%d %s %d, go %s", e.Value, op, e.Current, e.Dir)
}

func (e InsertChild) String() string {
	return fmt.Sprintf("insert %d as %s child of %d", e.Value, e.Dir, e.Parent)
}

func (e Visit) String() string {
	return fmt.Sprintf("visit %d looking for %d", e.Current, e.Value)
}

func (e Found) String() string {
	return fmt.Sprintf("found %d", e.Value)
}

func (e NotFound) String() string {
	return fmt.Sprintf("%d not found", e.Value)
}

func (e DeleteVisit) String() string {
	return fmt.Sprintf("visit %d to delete %d", e.Current, e.Value)
}

func (e DeleteNotFound) String() string {
	return fmt.Sprintf("%d not found, nothing deleted", e.Value)
}

func (e DeleteNoLeft) String() string {
	if e.Replacement == nil {
		return fmt.Sprintf("remove leaf %d", e.Value)
	}
	return fmt.Sprintf("replace %d with right child %d", e.Value, *e.Replacement)
}

func (e DeleteNoRight) String() string {
	return fmt.Sprintf("replace %d with left child %d", e.Value, e.Replacement)
}

func (e DeleteTwoChildren) String() string {
	return fmt.Sprintf("promote successor %d into %d", e.Successor, e.Value)
}

// Step is one entry of the step log: what the algorithm decided and the shape
// of the tree at that instant.
type Step struct {
	Event Event
	Tree  Snapshot
}

// Action returns the tag of the step's event.
func (s Step) Action() Action {
	return s.Event.Action()
}

func (s Step) String() string {
	return fmt.Sprintf("%s: %s", s.Event.Action(), s.Event)
}

var jsonNull = json.RawMessage("null")

type stepJSON struct {
	Action      Action          `json:"action"`
	Value       int             `json:"value"`
	CurrentNode *int            `json:"current_node,omitempty"`
	Parent      *int            `json:"parent,omitempty"`
	Replacement json.RawMessage `json:"replacement,omitempty"`
	Successor   *int            `json:"successor,omitempty"`
	TreeState   Snapshot        `json:"tree_state"`
}

// MarshalJSON flattens the event fields next to the action tag and the tree
// snapshot. delete_no_left always carries a replacement, null for a leaf.
func (s Step) MarshalJSON() ([]byte, error) {
	w := stepJSON{
		Action:    s.Event.Action(),
		Value:     s.Event.Target(),
		TreeState: s.Tree,
	}
	switch e := s.Event.(type) {
	case Duplicate:
		w.CurrentNode = &e.Current
	case Descend:
		w.CurrentNode = &e.Current
	case InsertChild:
		w.Parent = &e.Parent
	case Visit:
		w.CurrentNode = &e.Current
	case Found:
		w.CurrentNode = &e.Current
	case DeleteVisit:
		w.CurrentNode = &e.Current
	case DeleteNoLeft:
		w.Replacement = jsonNull
		if e.Replacement != nil {
			w.Replacement = json.RawMessage(strconv.Itoa(*e.Replacement))
		}
	case DeleteNoRight:
		w.Replacement = json.RawMessage(strconv.Itoa(e.Replacement))
	case DeleteTwoChildren:
		w.Successor = &e.Successor
	}
	return json.Marshal(w)
}
