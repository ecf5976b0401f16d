package barcode

import (
	"fmt"
	"hash/fnv"
)

// CodeLength is the full printed code size: six significant digits plus one
// check digit.
const CodeLength = 7

// Generate derives the printed barcode for a product id. The same id always
// yields the same code.
func Generate(productID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productID))
	significant := fmt.Sprintf("%06d", h.Sum32()%1000000)
	return significant + string(rune('0'+checkDigit(significant)))
}

// Validate reports whether a printed code is well formed and its check digit
// matches.
func Validate(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return checkDigit(code[:CodeLength-1]) == int(code[CodeLength-1]-'0')
}

// checkDigit weighs digits alternately 1x and 3x. The weights are coprime
// to 10, so every single-digit corruption shifts the sum.
func checkDigit(digits string) int {
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += 3 * d
		}
	}
	return (10 - sum%10) % 10
}
