// Package idx mints ULID identifiers for accounts, tokens and requests.
package idx

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a canonical 26-character ULID.
type ID string

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

func New() ID { return NewAt(time.Now()) }

// NewAt mints an ID stamped with t. IDs from the same millisecond still sort
// in creation order.
func NewAt(t time.Time) ID {
	mu.Lock()
	u := ulid.MustNew(ulid.Timestamp(t), entropy)
	mu.Unlock()
	return ID(u.String())
}

// Parse accepts only canonical ULIDs.
func Parse(s string) (ID, error) {
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", fmt.Errorf("idx: parse %q: %w", s, err)
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

// Time is the embedded creation time, zero when id is not a ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
