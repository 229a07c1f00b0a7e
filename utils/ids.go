package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const bookingRefPrefix = "MKC"

// NewBookingRef generates a booking reference of the form
// MKC + 6-digit time suffix + 5-character random suffix, e.g. MKC493817A04F2.
// Assigned once at creation and never reassigned.
func NewBookingRef() string {
	ts := time.Now().Unix() % 1_000_000
	tail := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:5]
	return fmt.Sprintf("%s%06d%s", bookingRefPrefix, ts, tail)
}
