package interfaces

import "errors"

// Store adapters wrap these so use cases can react to conditional writes.
var (
	ErrAlreadyExists   = errors.New("item already exists")
	ErrConditionFailed = errors.New("conditional update failed")
)
