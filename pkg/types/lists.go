package types

import "github.com/google/uuid"

// UUIDList is a JSON-serialized set of identifiers stored in a single column.
type UUIDList []uuid.UUID

// Contains reports whether the list holds the given id.
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, candidate := range l {
		if candidate == id {
			return true
		}
	}
	return false
}

// StringList is a JSON-serialized list of strings stored in a single column.
type StringList []string
