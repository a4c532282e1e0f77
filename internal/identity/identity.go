package identity

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier suitable for naming a remote
// resource: a UUID v4 rendered as lowercase hex with the dashes removed.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
