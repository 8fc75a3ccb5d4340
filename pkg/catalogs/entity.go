package catalogs

import "sync"

// Kind names an entity variant.
type Kind string

// Entity kinds.
const (
	KindWinery   Kind = "winery"
	KindVarietal Kind = "varietal"
	KindWine     Kind = "wine"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Entity is a catalog record with an immutable id and a display name.
// Identity is defined solely by the id.
type Entity interface {
	ID() string
	Name() string
	SetName(name string)
	Equal(other Entity) bool
	Kind() Kind
}

// Viewer renders an entity against the catalog it belongs to.
// Basic views carry counts, full views carry the expanded related names.
type Viewer interface {
	Basic(c *Catalog) any
	Full(c *Catalog) any
}

// entity holds the fields shared by every variant.
// The name is guarded so a rename never races with concurrent readers.
type entity struct {
	id string

	mu   sync.RWMutex
	name string
}

// ID returns the entity id.
func (e *entity) ID() string {
	return e.id
}

// Name returns the display name.
func (e *entity) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// SetName replaces the display name.
func (e *entity) SetName(name string) {
	e.mu.Lock()
	e.name = name
	e.mu.Unlock()
}

// Equal reports whether other is a non-nil entity with the same id.
func (e *entity) Equal(other Entity) bool {
	if isNilEntity(other) {
		return false
	}
	return e.id == other.ID()
}

func isNilEntity(e Entity) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Winery:
		return v == nil
	case *Varietal:
		return v == nil
	case *Wine:
		return v == nil
	}
	return false
}
