// Package id provides random identifiers for temporary resources and
// published artifacts.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// New returns a 16-character lowercase hex identifier (64 bits of
// randomness). Names built from it need no cross-job coordination.
func New() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback to a timestamp if crypto/rand fails
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
