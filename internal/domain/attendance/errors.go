package attendance

import "errors"

// ErrDuplicateDay means the employee already has a mark for the normalized day.
var ErrDuplicateDay = errors.New("attendance already marked for this employee and day")
