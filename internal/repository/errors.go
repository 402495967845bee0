package repository

import "strings"

// IsDuplicateKeyError reports whether err was caused by a unique constraint
// violation. Neither wired driver translates the violation to a gorm
// sentinel at this version, so the driver messages are matched directly:
// "Duplicate entry" for mysql, "UNIQUE constraint failed" for sqlite.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
