package store

import "strings"

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// failure. modernc.org/sqlite does not export a typed error for this, so the
// check is on the driver's message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint failed")
}

// IsForeignKeyViolation reports whether err is a SQLite foreign-key failure,
// e.g. pairing an ingredient with a recipe that does not exist.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
