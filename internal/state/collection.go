// Package state holds the authoritative in-memory copy of the employee
// collection and the record currently being edited.
package state

import (
	"slices"

	"github.com/csg33k/employee-manager/internal/domain"
)

// Collection mirrors the server's employee set. It is not safe for
// concurrent use; the controller serialises access.
type Collection struct {
	records []domain.Employee
	editing domain.ID
	inEdit  bool
}

func NewCollection() *Collection {
	return &Collection{}
}

// ReplaceAll swaps in a freshly fetched set.
func (c *Collection) ReplaceAll(records []domain.Employee) {
	c.records = slices.Clone(records)
}

func (c *Collection) Append(e domain.Employee) {
	c.records = append(c.records, e)
}

// ReplaceOne overwrites the record with the given id in place. It
// reports false, and changes nothing, when the id is unknown.
func (c *Collection) ReplaceOne(id domain.ID, e domain.Employee) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.records[i] = e
	return true
}

// RemoveOne drops the record with the given id. It reports false, and
// changes nothing, when the id is unknown.
func (c *Collection) RemoveOne(id domain.ID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.records = slices.Delete(c.records, i, i+1)
	return true
}

// All returns a copy of the records in server order.
func (c *Collection) All() []domain.Employee {
	return slices.Clone(c.records)
}

func (c *Collection) Find(id domain.ID) (domain.Employee, bool) {
	i := c.index(id)
	if i < 0 {
		return domain.Employee{}, false
	}
	return c.records[i], true
}

func (c *Collection) Len() int { return len(c.records) }

func (c *Collection) index(id domain.ID) int {
	return slices.IndexFunc(c.records, func(e domain.Employee) bool { return e.ID == id })
}

// ── Edit target ───────────────────────────────────────────────────────────────

// BeginCreate clears the edit target: the open form adds a record.
func (c *Collection) BeginCreate() {
	c.editing, c.inEdit = "", false
}

// BeginEdit makes id the edit target of the open form.
func (c *Collection) BeginEdit(id domain.ID) {
	c.editing, c.inEdit = id, true
}

// EditTarget returns the id under edit, or false in create mode.
func (c *Collection) EditTarget() (domain.ID, bool) {
	return c.editing, c.inEdit
}
