// Package uuid generates and checks the string IDs used as primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 so rows inserted later sort after
// earlier ones. It falls back to a random v4 if the v7 clock source fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID. IDs taken from request paths
// are checked before they reach a uuid-typed column, where postgres would
// reject them with a cast error instead of a miss.
func IsValid(s string) bool {
	return googleuuid.Validate(s) == nil
}
