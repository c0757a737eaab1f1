package utils

// AddWithOverflow adds a and b, reporting whether the sum leaves the
// 16-bit accumulator range the parser works in.
func AddWithOverflow(a int, b int) (int, bool) {
	if (a > 0 && b > 0 && a > (1<<16)-1-b) ||
		(a < 0 && b < 0 && a < -(1<<16)-b) {
		return 0, true
	}
	return a + b, false
}
