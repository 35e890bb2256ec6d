package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidateSymbol normalizes (trim, uppercase) a raw ticker and checks it
// against the 1-5 letter format. Returns the normalized symbol.
func ValidateSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSymbol)
	}
	if !symbolPattern.MatchString(symbol) {
		return "", fmt.Errorf("%w: %s (must be 1-5 letters)", ErrInvalidSymbol, symbol)
	}
	return symbol, nil
}

// NormalizeBatch normalizes a batch of tickers, rejecting empty batches
// and batches larger than maxBatchSize. Individual symbols are not
// validated here: a malformed entry fails its own slot in the batch
// result instead of the whole request.
func NormalizeBatch(raw []string, maxBatchSize int) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidSymbol)
	}
	if maxBatchSize > 0 && len(raw) > maxBatchSize {
		return nil, fmt.Errorf("%w: batch size %d exceeds maximum of %d", ErrInvalidSymbol, len(raw), maxBatchSize)
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, strings.ToUpper(strings.TrimSpace(r)))
	}
	return out, nil
}
