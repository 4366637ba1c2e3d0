// Package patch builds partial update statements from request payloads.
// Column names only ever come from compile-time whitelists; values are always
// handed to the store as bound parameters.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// ErrEmptyChange signals that no whitelisted fields remained after filtering.
// Callers surface it as a client error, never as a silent no-op.
var ErrEmptyChange = errors.New("no fields to update")

// Field maps a logical request field onto its store column.
type Field struct {
	Name   string
	Column string
}

// Whitelist is the ordered set of fields an entity allows in partial updates.
type Whitelist []Field

func (w Whitelist) column(name string) (string, bool) {
	for _, field := range w {
		if field.Name == name {
			return field.Column, true
		}
	}
	return "", false
}

// Allows reports whether the whitelist admits the named field.
func (w Whitelist) Allows(name string) bool {
	_, ok := w.column(name)
	return ok
}

type change struct {
	name  string
	value interface{}
}

// ChangeSet accumulates the fields a request intends to overwrite, in the
// order they were added. Fields absent from the payload are never added.
type ChangeSet struct {
	changes []change
}

// Set records a scalar change.
func (cs *ChangeSet) Set(name string, value interface{}) {
	cs.changes = append(cs.changes, change{name: name, value: value})
}

// SetJSON records a structured change, serialised to a stable JSON encoding
// before it becomes a bound parameter.
func (cs *ChangeSet) SetJSON(name string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	cs.changes = append(cs.changes, change{name: name, value: datatypes.JSON(encoded)})
	return nil
}

// Len reports how many changes have been recorded.
func (cs *ChangeSet) Len() int {
	return len(cs.changes)
}

// Assignments is the ordered output of Build: columns and their parameters,
// parameter order matching assignment order.
type Assignments struct {
	columns []string
	values  []interface{}
}

// Columns returns the assigned columns in build order.
func (a Assignments) Columns() []string {
	return a.columns
}

// Values returns the bound parameters in the same order as Columns.
func (a Assignments) Values() []interface{} {
	return a.values
}

// Map renders the assignments for gorm's Updates.
func (a Assignments) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(a.columns))
	for i, column := range a.columns {
		out[column] = a.values[i]
	}
	return out
}

// Build filters the change set against the whitelist and produces the
// ordered assignments. Unknown fields are dropped; an empty result is an
// error, not a success.
func Build(whitelist Whitelist, cs *ChangeSet) (Assignments, error) {
	var assignments Assignments
	for _, change := range cs.changes {
		column, ok := whitelist.column(change.name)
		if !ok {
			continue
		}
		assignments.columns = append(assignments.columns, column)
		assignments.values = append(assignments.values, change.value)
	}

	if len(assignments.columns) == 0 {
		return Assignments{}, ErrEmptyChange
	}
	return assignments, nil
}
