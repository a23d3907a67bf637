package permission

import (
	"errors"
	"reflect"
	"testing"
)

func TestRoleSetMembership(t *testing.T) {
	s := Roles(1, 4, 64, 255)
	for _, id := range []int{1, 4, 64, 255} {
		if !s.Has(id) {
			t.Fatalf("expected %d in set", id)
		}
	}
	for _, id := range []int{0, 2, 63, 65, 256, -1} {
		if s.Has(id) {
			t.Fatalf("did not expect %d in set", id)
		}
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []int{1, 4, 64, 255}) {
		t.Fatalf("IDs = %v", got)
	}
	if s.Len() != 4 || s.Empty() {
		t.Fatalf("Len=%d Empty=%v", s.Len(), s.Empty())
	}
	if s.String() != "[1,4,64,255]" {
		t.Fatalf("String = %q", s.String())
	}
}

func TestRoleSetEmpty(t *testing.T) {
	var zero RoleSet
	if !zero.Empty() || !Any().Empty() || zero.Len() != 0 {
		t.Fatal("zero value must be the empty set")
	}
	if !zero.Equal(Any()) || zero.String() != "*" {
		t.Fatalf("unexpected empty set rendering %q", zero.String())
	}
}

func TestNewRoleSetRejectsOutOfRange(t *testing.T) {
	if _, err := NewRoleSet(1, 256); !errors.Is(err, ErrRoleOutOfRange) {
		t.Fatalf("expected ErrRoleOutOfRange, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Roles must panic on invalid ids")
		}
	}()
	_ = Roles(-3)
}

func TestRoleSetUnion(t *testing.T) {
	u := Roles(1).Union(Roles(4, 200))
	if !u.Equal(Roles(1, 4, 200)) {
		t.Fatalf("union = %s", u)
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(1, "ADMINISTRADOR"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register(4, "SUPERVISOR"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register(1, "OTRO"); err == nil {
		t.Fatal("duplicate id must fail")
	}

	set, err := c.Set(1, 4)
	if err != nil || !set.Equal(Roles(1, 4)) {
		t.Fatalf("Set(1,4) = %s, %v", set, err)
	}
	if _, err := c.Set(1, 9); err == nil {
		t.Fatal("unregistered role must fail")
	}

	c.Freeze()
	if err := c.Register(2, "OPERADOR"); err == nil {
		t.Fatal("frozen catalog accepted a role")
	}
	if name, ok := c.Name(4); !ok || name != "SUPERVISOR" || c.Count() != 2 {
		t.Fatalf("Name(4) = %q %v count=%d", name, ok, c.Count())
	}
}
