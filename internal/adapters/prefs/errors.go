package prefs

import "errors"

// ErrPersist wraps failures reading or writing the preference file.
var ErrPersist = errors.New("prefs persistence failed")
