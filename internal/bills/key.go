package bills

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedKey indicates an object key that does not follow the
// users/{ownerId}/bills/{utilityCategory}/{fileName} layout.
var ErrMalformedKey = errors.New("malformed object key")

// ObjectKeyParts holds the identity segments derived from an object key.
type ObjectKeyParts struct {
	OwnerID         string
	UtilityCategory string
	FileName        string
}

// ParseObjectKey splits an object key positionally into its identity parts.
// The layout is strict: five segments, anchored by the "users" and "bills"
// literals. Keys written by the upload endpoint always match; anything else
// fails fast instead of silently deriving wrong owner or category values.
func ParseObjectKey(key string) (ObjectKeyParts, error) {
	segments := strings.Split(key, "/")
	if len(segments) != 5 || segments[0] != "users" || segments[2] != "bills" {
		return ObjectKeyParts{}, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	parts := ObjectKeyParts{
		OwnerID:         segments[1],
		UtilityCategory: segments[3],
		FileName:        segments[4],
	}
	if parts.OwnerID == "" || parts.UtilityCategory == "" || parts.FileName == "" {
		return ObjectKeyParts{}, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	return parts, nil
}
