// Package price converts between the ledger's base unit (wei) and the
// decimal ether amounts shown to and typed by users.
package price

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/shopspring/decimal"
)

// Decimals of the native currency.
const Decimals = 18

var amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ToDisplay renders wei as an ether amount. Whole amounts keep one
// fractional digit ("2.0") and trailing zeros are trimmed otherwise.
func ToDisplay(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}

	s := decimal.NewFromBigInt(wei, -Decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ToBaseUnits parses an ether amount into wei. Signs, exponents and more
// than 18 fractional digits are rejected with common.ErrInvalidPrice.
func ToBaseUnits(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPrice, amount)
	}

	if _, frac, ok := strings.Cut(amount, "."); ok && len(frac) > Decimals {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", common.ErrInvalidPrice, amount, Decimals)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPrice, err)
	}

	return d.Shift(Decimals).BigInt(), nil
}
