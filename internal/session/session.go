package session

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

const (
	stampLayout = "20060102-150405"
	suffixBytes = 3
)

// NewID returns a sortable, human-readable id for one training session.
func NewID() string {
	return newID(time.Now())
}

// newID is the start time to the second followed by a random hex suffix,
// so ids of sessions started in the same second still differ.
func newID(start time.Time) string {
	var suffix [suffixBytes]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return start.Format(stampLayout) + "-" + strconv.Itoa(start.Nanosecond()%1_000_000)
	}
	return start.Format(stampLayout) + "-" + hex.EncodeToString(suffix[:])
}
