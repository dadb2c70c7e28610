package core

import (
	"fmt"
	"strings"
)

// CollisionType describes how an acting layer interacts with an occupied cell
// on a target layer.
type CollisionType uint8

const (
	// CollisionNone lets agents move into the cell.
	CollisionNone CollisionType = iota
	// CollisionSolid blocks movement into the cell.
	CollisionSolid
	// CollisionTrigger does not block; it only reports the overlap.
	CollisionTrigger
)

func (t CollisionType) String() string {
	switch t {
	case CollisionNone:
		return "none"
	case CollisionSolid:
		return "solid"
	case CollisionTrigger:
		return "trigger"
	default:
		return fmt.Sprintf("collision(%d)", uint8(t))
	}
}

// ParseCollisionType converts a case-insensitive name into a CollisionType.
func ParseCollisionType(s string) (CollisionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CollisionNone, nil
	case "solid":
		return CollisionSolid, nil
	case "trigger":
		return CollisionTrigger, nil
	}
	return CollisionNone, fmt.Errorf("%w: unknown collision type %q", ErrInvalidArgument, s)
}

// CollisionList maps target layers to collision types for one source layer.
// Unlisted layers collide as CollisionNone.
type CollisionList map[int]CollisionType

// Get returns the rule for the target layer.
func (l CollisionList) Get(layer int) CollisionType {
	return l[layer]
}

// Add sets the rule for the target layer.
func (l CollisionList) Add(t CollisionType, layer int) {
	l[layer] = t
}

// CollisionMap holds one CollisionList per source layer. Rules are asymmetric:
// Get(a, b) need not equal Get(b, a).
//
// The zero value has no layers and answers CollisionNone to every query, which
// is what a board without a collision policy falls back to.
type CollisionMap struct {
	lists []CollisionList
}

// NewCollisionMap preallocates empty rule lists for the given layer count.
func NewCollisionMap(layers int) *CollisionMap {
	if layers < 0 {
		layers = 0
	}
	m := &CollisionMap{lists: make([]CollisionList, layers)}
	for i := range m.lists {
		m.lists[i] = CollisionList{}
	}
	return m
}

// Len returns the number of configured source layers.
func (m *CollisionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.lists)
}

// Add registers the rule src -> dst. The destination layer is not validated;
// a rule for a layer that never exists is simply never consulted.
func (m *CollisionMap) Add(t CollisionType, src, dst int) error {
	if src < 0 || src >= m.Len() {
		return &BoardError{Op: "collision add", Code: CodeOutOfRange, Layer: src, Err: ErrOutOfRange}
	}
	m.lists[src].Add(t, dst)
	return nil
}

// Get resolves the rule src -> dst.
func (m *CollisionMap) Get(src, dst int) (CollisionType, error) {
	n := m.Len()
	if n == 0 {
		return CollisionNone, nil
	}
	if src < 0 || dst < 0 || src >= n || dst >= n {
		layer := src
		if src >= 0 && src < n {
			layer = dst
		}
		return CollisionNone, &BoardError{Op: "collision get", Code: CodeOutOfRange, Layer: layer, Err: ErrOutOfRange}
	}
	return m.lists[src].Get(dst), nil
}

// Clone returns an independent copy of the map.
func (m *CollisionMap) Clone() *CollisionMap {
	out := NewCollisionMap(m.Len())
	for i := 0; i < m.Len(); i++ {
		for layer, t := range m.lists[i] {
			out.lists[i][layer] = t
		}
	}
	return out
}
