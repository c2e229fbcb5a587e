// Package runtimecfg is the generic configuration layer shared by the
// ledger-runtime modules. A deployment binds two types here: an account
// identifier (any comparable type usable as a map key) and a balance
// (an unsigned integer of any width). Modules are generic over both and
// compose only by sharing the account-identifier type parameter.
package runtimecfg

// Balance constrains the token amount type. Any unsigned width works;
// the checked helpers below hold for all of them, so no module hard-codes
// a numeric width.
type Balance interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// CheckedAdd reports false instead of wrapping when a+b overflows.
func CheckedAdd[B Balance](a, b B) (B, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// CheckedSub reports false instead of wrapping when b exceeds a.
func CheckedSub[B Balance](a, b B) (B, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}
