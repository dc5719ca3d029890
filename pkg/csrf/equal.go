// Package csrf implements stateless anti-forgery token handling.
package csrf

// ConstantTimeEquals compares two strings without branching on the
// position of the first differing byte, resisting timing oracles that
// could otherwise recover the expected token byte by byte.
//
// The loop always runs max(len(a), len(b)) iterations, reading a zero
// past the end of the shorter input. Length equality is the only thing
// the running time reveals. crypto/subtle is not used here: it returns
// early on a length mismatch, and the padded iteration is part of this
// primitive's contract.
func ConstantTimeEquals(a, b string) bool {
	result := len(a) ^ len(b)

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		result |= int(ca ^ cb)
	}

	return result == 0
}
