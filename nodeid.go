package setnodeid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// IdentityOffset is where the node ID lives in the persistent store.
	IdentityOffset = 0
	// IdentitySize is the number of bytes reserved for the identity region.
	// Sibling programs read the same single-byte layout.
	IdentitySize = 1
)

// NodeID is this device's identity in the mesh. The mesh itself defines what
// each value means; this program only persists it.
type NodeID uint8

func (id NodeID) String() string {
	return strconv.Itoa(int(id))
}

// Byte returns the value as stored at IdentityOffset.
func (id NodeID) Byte() byte {
	return byte(id)
}

// ParseNodeID parses a decimal node ID in the range 0-255.
func ParseNodeID(s string) (NodeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse node id: empty value")
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parse node id %q: must be an integer between 0 and 255", s)
	}
	return NodeID(v), nil
}
