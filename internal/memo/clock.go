package memo

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// IDSource generates unique identifiers. A Store retries a few times when
// an id is already taken, then switches to UUIDSource.
type IDSource interface {
	NewID() string
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDSource issues time-ordered UUIDv7 identifiers, which stay unique under
// rapid successive creation.
type UUIDSource struct{}

func (UUIDSource) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
