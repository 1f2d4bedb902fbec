package graph

import (
	"fmt"
	"strings"
)

// ErrSchemaViolation reports one or more competency-model invariant
// violations found while validating a fact batch. The whole batch is
// rejected; Problems lists every violation found, not just the first.
type ErrSchemaViolation struct {
	Problems []string
}

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("schema violation:\n  %s", strings.Join(e.Problems, "\n  "))
}

// ErrNotFound indicates a point lookup for an entity that is not in the
// current snapshot.
type ErrNotFound struct {
	Kind string // "skill", "role", "level", "attribute"
	Code string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Code)
}
