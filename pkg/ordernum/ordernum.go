// Package ordernum generates human-readable reference numbers for orders and
// deliveries: a prefix, the millisecond timestamp, and a random 9-character
// uppercase alphanumeric suffix (e.g. ORD-1724380800123-7F3KQ9Z2M).
package ordernum

import (
	"fmt"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength = 9
)

var newSuffix func() string

func init() {
	gen, err := nanoid.CustomASCII(alphabet, suffixLength)
	if err != nil {
		panic(fmt.Sprintf("ordernum: bad generator config: %v", err))
	}
	newSuffix = gen
}

// Order returns a new order number. Collisions are astronomically unlikely
// but not impossible; callers insert under a unique constraint and retry.
func Order() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), newSuffix())
}

// Tracking returns a new delivery tracking number.
func Tracking() string {
	return fmt.Sprintf("TRK-%d-%s", time.Now().UnixMilli(), newSuffix())
}
