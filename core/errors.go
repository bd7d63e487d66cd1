package core

import "errors"

// ErrNodeNotFound describes an Id whose index does not belong to the
// Expression it is presented to. No function in this package returns it:
// AddRoot and the node accessors panic in that case instead.
var ErrNodeNotFound = errors.New("core: node id does not belong to this expression")
