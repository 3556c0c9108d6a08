// Package serial generates and checks the identifiers printed on a batik
// certificate of authenticity: the serial number BATIK-YYYY-NNNNNN and the
// 13-digit barcode derived from it.
package serial

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
)

const (
	Prefix        = "BATIK"
	MaxSequence   = 999_999
	BarcodeLength = 13
)

var (
	pattern      = regexp.MustCompile(`^BATIK-(\d{4})-(\d{6})$`)
	scopePattern = regexp.MustCompile(`^BATIK-\d{4}$`)
)

// Sequencer hands out sequence values within a scope (one scope per year).
type Sequencer interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// Scope is the counter scope for serials issued in year.
func Scope(year int) string {
	return fmt.Sprintf("%s-%04d", Prefix, year)
}

// IsScope reports whether s has the shape produced by Scope.
func IsScope(s string) bool {
	return scopePattern.MatchString(s)
}

// SerialNumber formats BATIK-YYYY-NNNNNN. Values that do not fit the fixed
// widths are rejected rather than truncated.
func SerialNumber(year int, sequence int64) (string, error) {
	if year < 0 || year > 9999 {
		return "", fmt.Errorf("%w: year %d", common.ErrSequenceOutOfRange, year)
	}
	if sequence < 0 || sequence > MaxSequence {
		return "", fmt.Errorf("%w: %d", common.ErrSequenceOutOfRange, sequence)
	}
	return fmt.Sprintf("%s-%04d-%06d", Prefix, year, sequence), nil
}

// Generate draws the next value for now's year from seq and formats it.
func Generate(ctx context.Context, seq Sequencer, now time.Time) (string, error) {
	year := now.Year()

	n, err := seq.Next(ctx, Scope(year))
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	return SerialNumber(year, n)
}

// Barcode keeps the digits of serial, left-pads them with zeros to 13 and
// returns the first 13 characters. Longer inputs lose their tail.
func Barcode(serial string) string {
	var b strings.Builder
	for _, r := range serial {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < BarcodeLength {
		digits = strings.Repeat("0", BarcodeLength-len(digits)) + digits
	}
	return digits[:BarcodeLength]
}

// Validate reports whether s is a well-formed serial number.
func Validate(s string) bool {
	return pattern.MatchString(s)
}

// Parse splits a serial number into its year and sequence.
func Parse(s string) (year int, sequence int64, err error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", common.ErrInvalidSerial, s)
	}

	year, _ = strconv.Atoi(m[1])
	sequence, _ = strconv.ParseInt(m[2], 10, 64)
	return year, sequence, nil
}
