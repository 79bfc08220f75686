package registry

import "errors"

// ErrBindingConflict reports an identifier bound to two records.
var ErrBindingConflict = errors.New("identifier already bound to another record")
