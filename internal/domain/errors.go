package domain

import "errors"

// ErrNoUsableRows distinguishes "every input row was discarded during
// normalization" from a legitimately empty feed.
var ErrNoUsableRows = errors.New("no usable rows after normalization")
