package leave

import "errors"

var ErrNotFound = errors.New("leave record not found")
