package permission

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MaxRoleID is the largest role identifier a RoleSet can hold.
const MaxRoleID = 255

// ErrRoleOutOfRange is returned for role ids outside [0, MaxRoleID].
var ErrRoleOutOfRange = errors.New("role id out of range")

// RoleSet is a route's allow-list of numeric role identifiers, stored as a 256-bit mask.
//
// The zero value is the empty set, which permits any authenticated identity. RoleSet is a
// value type; it is declared once per route and never mutated afterwards.
type RoleSet struct {
	words [4]uint64
}

// NewRoleSet builds a set from ids.
func NewRoleSet(ids ...int) (RoleSet, error) {
	var s RoleSet
	for _, id := range ids {
		if id < 0 || id > MaxRoleID {
			return RoleSet{}, fmt.Errorf("%w: %d", ErrRoleOutOfRange, id)
		}
		s.words[id/64] |= 1 << (uint(id) % 64)
	}
	return s, nil
}

// Roles is NewRoleSet for route declarations; it panics on an out-of-range id.
func Roles(ids ...int) RoleSet {
	s, err := NewRoleSet(ids...)
	if err != nil {
		panic(err)
	}
	return s
}

// Any is the empty allow-list.
func Any() RoleSet { return RoleSet{} }

// Empty reports whether the set holds no role.
func (s RoleSet) Empty() bool {
	return s.words == [4]uint64{}
}

// Has reports whether id is in the set.
func (s RoleSet) Has(id int) bool {
	if id < 0 || id > MaxRoleID {
		return false
	}
	return s.words[id/64]&(1<<(uint(id)%64)) != 0
}

// Len returns the number of roles in the set.
func (s RoleSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IDs returns the members in ascending order.
func (s RoleSet) IDs() []int {
	out := make([]int, 0, s.Len())
	for i, w := range s.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, i*64+bit)
			w &^= 1 << uint(bit)
		}
	}
	return out
}

// Union returns the roles present in s or other.
func (s RoleSet) Union(other RoleSet) RoleSet {
	var out RoleSet
	for i := range s.words {
		out.words[i] = s.words[i] | other.words[i]
	}
	return out
}

func (s RoleSet) String() string {
	if s.Empty() {
		return "*"
	}
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Equal reports whether both sets hold the same roles.
func (s RoleSet) Equal(other RoleSet) bool {
	return s.words == other.words
}
