package model

import "errors"

// ErrNoRecord is returned by stores when the requested record does not
// exist.
var ErrNoRecord = errors.New("no record")
