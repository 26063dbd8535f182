package core

import (
	"strings"

	"github.com/google/uuid"

	"omsim/internal/errors"
)

// ID represents a domain identifier
type ID string

// NewID creates a time-ordered identifier, UUID v7 with a v4 fallback
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies one simulation sweep in logs and reports
type RunID ID

// NewRunID creates a fresh run id
func NewRunID() RunID { return RunID(NewID()) }

func (id RunID) String() string { return ID(id).String() }

// ParseRunID accepts any non-blank id, trimmed
func ParseRunID(s string) (RunID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.InvalidInput("run ID cannot be empty")
	}
	return RunID(s), nil
}
