package card

// CheckLuhn validates the Luhn (mod 10) check digit of a digit string.
// It expects input already normalized to decimal digits only.
//
// The scan runs right to left with an alternating flag that starts unset at
// the rightmost digit: every second digit is doubled, and doubled values over
// nine are folded by summing their decimal digits (equivalent to subtracting
// nine). The string is valid iff the running sum is divisible by ten.
// Constant space, linear time; the empty string is invalid.
func CheckLuhn(digits string) bool {
	if len(digits) == 0 {
		return false
	}

	var sum int
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')

		if double {
			digit *= 2
			if digit > 9 {
				digit = (digit % 10) + (digit / 10)
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}
