package scope

import "github.com/google/uuid"

// OwnerID identifies a lifecycle context (e.g. a mounted component).
type OwnerID string

// NewOwnerID returns a random owner identifier.
func NewOwnerID() OwnerID {
	return OwnerID(uuid.NewString())
}

// String returns the identifier.
func (o OwnerID) String() string {
	return string(o)
}
