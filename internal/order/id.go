package order

import (
	"strconv"
	"strings"
	"time"
)

const (
	idPrefix     = "ORD-"
	suffixLength = 4
	base36       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// IntNSource is satisfied by *math/rand/v2.Rand.
type IntNSource interface {
	IntN(n int) int
}

// NewOrderID returns ORD-<base36 unix millis>-<4 random base36 chars>.
// Two ids created in the same millisecond collide with probability 36^-4.
func NewOrderID(now time.Time, r IntNSource) string {
	var b strings.Builder
	b.WriteString(idPrefix)
	b.WriteString(strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)))
	b.WriteByte('-')
	for i := 0; i < suffixLength; i++ {
		b.WriteByte(base36[r.IntN(len(base36))])
	}
	return b.String()
}
