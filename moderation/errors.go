package moderation

import "fmt"

// ValidationError rejects a request before any side effect happens: bad
// duration format, self-target, bot-target. Always user-visible.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthorityError rejects a request on hierarchy or permission grounds.
// Always user-visible, never retried.
type AuthorityError struct {
	Message string
}

func (e *AuthorityError) Error() string {
	return e.Message
}

// ExecutionError marks a failure while performing the platform action. The
// audit record has not been written at this point.
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// StorageError marks an audit-write failure after the platform action
// already happened. The action is not rolled back; callers surface a
// generic error to the user.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
