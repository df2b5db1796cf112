// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package font

import (
	"errors"
	"fmt"
)

// ErrMalformedAxis matches every *DataError via errors.Is.
var ErrMalformedAxis = errors.New("malformed axis data")

// DataError reports catalog data that cannot be turned into a usable axis.
type DataError struct {
	Family string
	Tag    string
	Field  string // min, max, default or step
	Value  string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("font %q: axis %q: invalid %s %q: %v", e.Family, e.Tag, e.Field, e.Value, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedAxis) hold for every DataError.
func (e *DataError) Is(target error) bool { return target == ErrMalformedAxis }
