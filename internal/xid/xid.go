// Package xid mints prefixed identifiers for stored records. The prefixes
// in use are "emp" (employees), "svc" (services), "tx" (transactions),
// "itm" (line items) and "usr" (staff accounts).
package xid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const entropyBytes = 8

// New returns "<prefix>-<unix nanos>-<random hex>". The timestamp keeps ids
// roughly sortable by creation; the random tail makes collisions within one
// nanosecond a non-concern.
func New(prefix string) string {
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), hex.EncodeToString(buf))
}
