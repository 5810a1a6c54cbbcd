// Package safe converts between integer widths without silent wraparound.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer kinds accepted by the converters.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Uint32 converts v to uint32, rejecting negatives and values above math.MaxUint32.
// Block heights travel as uint32 on the wire.
func Uint32[T Integer](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}
