package bills

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBillID returns a bill identifier unique with overwhelming probability:
// a millisecond timestamp joined to a 9-character random base36 suffix.
// Uniqueness is never checked against the table; collisions are accepted as
// negligible.
func NewBillID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + randomSuffix(9)
}

func randomSuffix(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is exceptional; fall back to a uuid fragment.
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:length]
	}
	var b strings.Builder
	b.Grow(length)
	for _, c := range buf {
		b.WriteByte(suffixAlphabet[int(c)%len(suffixAlphabet)])
	}
	return b.String()
}
