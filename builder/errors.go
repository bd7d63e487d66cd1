package builder

import "errors"

// ErrHandleNotFound describes a Handle whose index does not belong to the
// Builder it is presented to. No function in this package returns it:
// AddRoot panics with the same message instead.
var ErrHandleNotFound = errors.New("builder: handle does not belong to this builder")
