package permission

import (
	"errors"
	"fmt"
	"sync"
)

// Catalog maps role ids to their display names. It is filled at startup, frozen, and then
// only read.
type Catalog struct {
	mu     sync.RWMutex
	names  map[int]string
	frozen bool
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{names: make(map[int]string)}
}

// Register adds a role.
func (c *Catalog) Register(id int, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return errors.New("role catalog frozen")
	}
	if id < 0 || id > MaxRoleID {
		return fmt.Errorf("%w: %d", ErrRoleOutOfRange, id)
	}
	if name == "" {
		return errors.New("role name empty")
	}
	if _, exists := c.names[id]; exists {
		return fmt.Errorf("role %d already registered", id)
	}

	c.names[id] = name
	return nil
}

// Name returns the display name of id.
func (c *Catalog) Name(id int) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name, ok := c.names[id]
	return name, ok
}

// Set builds an allow-list, rejecting ids that were never registered so a typo in a
// route declaration fails at startup instead of silently locking the route.
func (c *Catalog) Set(ids ...int) (RoleSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range ids {
		if _, ok := c.names[id]; !ok {
			return RoleSet{}, fmt.Errorf("role %d not registered", id)
		}
	}
	return NewRoleSet(ids...)
}

// Freeze rejects further registrations.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Count returns the number of registered roles.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
