// Package checksum validates checksum-bearing Russian national identifiers:
// tax IDs (ИНН, 10-digit organization and 12-digit individual forms) and
// insurance numbers (СНИЛС).
package checksum

// ValidTaxID checks an ИНН checksum. The 10-digit form verifies the 10th
// digit against a weighted sum of the first 9; the 12-digit form verifies
// two independent check digits at positions 11 and 12. Non-digit input or
// any other length is rejected without arithmetic.
func ValidTaxID(id string) bool {
	digits, ok := toDigits(id)
	if !ok {
		return false
	}
	switch len(digits) {
	case 10:
		return taxCheckDigit(digits, weights10) == digits[9]
	case 12:
		return taxCheckDigit(digits, weights11) == digits[10] &&
			taxCheckDigit(digits, weights12) == digits[11]
	default:
		return false
	}
}

var (
	weights10 = []int{2, 4, 10, 3, 5, 9, 4, 6, 8}
	weights11 = []int{7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
	weights12 = []int{3, 7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
)

func taxCheckDigit(digits []int, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	return sum % 11 % 10
}

// ValidInsuranceNumber checks a СНИЛС checksum: the first 9 digits are
// weighted 9..1 and summed; a sum of 100 or 101 counts as 0; sums above
// 101 are reduced mod 101 first (with the same special case). The result
// must equal the last two digits.
func ValidInsuranceNumber(id string) bool {
	digits, ok := toDigits(id)
	if !ok || len(digits) != 11 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (9 - i)
	}
	control := sum
	if control > 101 {
		control %= 101
	}
	if control == 100 || control == 101 {
		control = 0
	}
	return control == digits[9]*10+digits[10]
}

// toDigits converts a pure-digit string to a digit slice. Any non-digit
// byte fails the conversion; callers strip separators beforehand.
func toDigits(s string) ([]int, bool) {
	if s == "" {
		return nil, false
	}
	digits := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		digits[i] = int(c - '0')
	}
	return digits, true
}
