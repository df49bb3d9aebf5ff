package entity

import "errors"

// Domain-invariant sentinel errors, distinct from the schederr parse
// taxonomy: these guard operations on an already-built Schedule rather
// than failures of the parse/build pipeline itself.
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrResourceNotFound = errors.New("resource not found")
)
